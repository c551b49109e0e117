// Package reshape converts tables between the wide layout (one column per
// variable) and the long layout (key/value rows).
package reshape

import (
	"fmt"
	"log/slog"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// Gather collapses the listed columns into key/value pairs.
//
// Every column not listed is held fixed and repeated on each output row. For
// each gathered column (in table order) and each input row (in row order) one
// row is emitted holding the fixed cells, the gathered column's name under
// keyName and its cell under valueName. Rows whose value is missing are
// left out only when dropMissing is set.
//
// The value column takes the common type of the gathered columns. Gathering
// NUMBER and TEXT columns together turns every value into text.
func Gather(t *schema.Table, keyName, valueName string, columns []string, dropMissing bool) (*schema.Table, error) {
	if keyName == "" || valueName == "" {
		return nil, errors.NewConfigurationError("gather", "key/value", "key and value column names are required")
	}
	if keyName == valueName {
		return nil, errors.NewConfigurationError("gather", "key/value",
			fmt.Sprintf("key and value columns are both named '%s'", keyName))
	}
	if len(columns) == 0 {
		return nil, errors.NewConfigurationError("gather", "columns", "no columns to gather")
	}

	selected := make(map[string]bool, len(columns))
	for _, c := range columns {
		if selected[c] {
			return nil, errors.NewConfigurationError("gather", "columns",
				fmt.Sprintf("column '%s' listed twice", c))
		}
		if !t.HasColumn(c) {
			return nil, errors.NewUnknownColumn("gather", t.Name(), c)
		}
		selected[c] = true
	}

	var held []schema.Column
	var gathered []string
	valueType := schema.ColumnTypeUnknown
	coerce := false
	for _, col := range t.Columns() {
		if !selected[col.Name] {
			if col.Name == keyName || col.Name == valueName {
				return nil, errors.NewConfigurationError("gather", "key/value",
					fmt.Sprintf("column '%s' already exists in table '%s'", col.Name, t.Name()))
			}
			held = append(held, col)
			continue
		}
		gathered = append(gathered, col.Name)
		if merged, ok := schema.Merge(valueType, col.Type); ok {
			valueType = merged
		} else {
			coerce = true
		}
	}
	if coerce {
		valueType = schema.ColumnTypeText
		slog.Debug("gather coerces mixed value types to text", "table", t.Name(), "columns", gathered)
	}

	outCols := make([]schema.Column, 0, len(held)+2)
	outCols = append(outCols, held...)
	outCols = append(outCols,
		schema.Column{Name: keyName, Type: schema.ColumnTypeText},
		schema.Column{Name: valueName, Type: valueType},
	)

	b := schema.NewBuilder(t.Name(), outCols)
	b.Grow(t.Len() * len(gathered))
	dropped := 0
	for _, name := range gathered {
		for i := 0; i < t.Len(); i++ {
			v := t.Value(i, name)
			if dropMissing && v.IsMissing() {
				dropped++
				continue
			}
			if coerce {
				v = v.ToText()
			}
			row := data.NewRow(make(map[string]data.Value, len(outCols)))
			for _, h := range held {
				row.Set(h.Name, t.Value(i, h.Name))
			}
			row.Set(keyName, data.Text(name))
			row.Set(valueName, v)
			b.Append(row)
		}
	}

	slog.Debug("gather",
		"table", t.Name(),
		"input_rows", t.Len(),
		"gathered_columns", len(gathered),
		"dropped_missing", dropped,
	)
	return b.Build()
}
