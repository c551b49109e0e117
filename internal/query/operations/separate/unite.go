package separate

import (
	"fmt"
	"strings"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// Unite concatenates the text of columns, joined by sep, into target.
// If any source cell is missing the united cell is missing too.
// The target column takes the position of the first source column when
// dropSources is set, and is appended otherwise.
func Unite(t *schema.Table, target string, columns []string, sep string, dropSources bool) (*schema.Table, error) {
	if target == "" {
		return nil, errors.NewConfigurationError("unite", "target", "target column name is required")
	}
	if len(columns) == 0 {
		return nil, errors.NewConfigurationError("unite", "columns", "no columns to unite")
	}
	sources := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !t.HasColumn(c) {
			return nil, errors.NewUnknownColumn("unite", t.Name(), c)
		}
		if sources[c] {
			return nil, errors.NewConfigurationError("unite", "columns",
				fmt.Sprintf("column '%s' listed twice", c))
		}
		sources[c] = true
	}
	if t.HasColumn(target) && !(dropSources && sources[target]) {
		return nil, errors.NewConfigurationError("unite", "target",
			fmt.Sprintf("column '%s' already exists in table '%s'", target, t.Name()))
	}

	united := schema.Column{Name: target, Type: schema.ColumnTypeText}
	var outCols []schema.Column
	placed := false
	for _, col := range t.Columns() {
		if dropSources && sources[col.Name] {
			if !placed {
				outCols = append(outCols, united)
				placed = true
			}
			continue
		}
		outCols = append(outCols, col)
	}
	if !placed {
		outCols = append(outCols, united)
	}

	b := schema.NewBuilder(t.Name(), outCols)
	b.Grow(t.Len())
	parts := make([]string, len(columns))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		missing := false
		for j, c := range columns {
			v := row.Get(c)
			if v.IsMissing() {
				missing = true
				break
			}
			parts[j] = v.String()
		}
		if dropSources {
			for _, c := range columns {
				delete(row.Data, c)
			}
		}
		if missing {
			row.Set(target, data.Missing())
		} else {
			row.Set(target, data.Text(strings.Join(parts, sep)))
		}
		b.Append(row)
	}
	return b.Build()
}
