// Package combine merges tables that hold the same kind of observation,
// turning "which table a row came from" into an explicit column first.
package combine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// Tag returns the table with column appended and set to value on every row
func Tag(t *schema.Table, column string, value data.Value) (*schema.Table, error) {
	if column == "" {
		return nil, errors.NewConfigurationError("tag", "column", "column name is required")
	}
	if t.HasColumn(column) {
		return nil, errors.NewConfigurationError("tag", "column",
			fmt.Sprintf("column '%s' already exists in table '%s'", column, t.Name()))
	}

	cols := append(t.Columns(), schema.Column{Name: column, Type: schema.TypeOf(value)})
	b := schema.NewBuilder(t.Name(), cols)
	b.Grow(t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		row.Set(column, value)
		b.Append(row)
	}
	return b.Build()
}

// TagWithName tags the table with its own name
func TagWithName(t *schema.Table, column string) (*schema.Table, error) {
	return Tag(t, column, data.Text(t.Name()))
}

// Union concatenates the rows of two or more tables in argument order.
//
// The result holds every column of every input, in order of first
// appearance; rows from a table without some column get a missing cell
// there. Typing is strict: a column that is NUMBER in one input and TEXT in
// another fails with a SchemaMismatchError. UNKNOWN columns fit either.
func Union(tables ...*schema.Table) (*schema.Table, error) {
	if len(tables) < 2 {
		return nil, errors.NewConfigurationError("union", "tables",
			fmt.Sprintf("need at least two tables, got %d", len(tables)))
	}

	var cols []schema.Column
	index := make(map[string]int)
	total := 0
	names := make([]string, len(tables))
	for ti, t := range tables {
		if t == nil {
			return nil, errors.NewConfigurationError("union", "tables", fmt.Sprintf("table %d is nil", ti))
		}
		names[ti] = t.Name()
		total += t.Len()
		for _, col := range t.Columns() {
			pos, ok := index[col.Name]
			if !ok {
				index[col.Name] = len(cols)
				cols = append(cols, col)
				continue
			}
			merged, ok := schema.Merge(cols[pos].Type, col.Type)
			if !ok {
				return nil, errors.NewSchemaMismatch("union", t.Name(), col.Name,
					string(cols[pos].Type), string(col.Type))
			}
			cols[pos].Type = merged
		}
	}

	b := schema.NewBuilder(strings.Join(names, "+"), cols)
	b.Grow(total)
	for _, t := range tables {
		for i := 0; i < t.Len(); i++ {
			row := t.Row(i)
			for _, col := range cols {
				if !row.Has(col.Name) {
					row.Set(col.Name, data.Missing())
				}
			}
			b.Append(row)
		}
	}

	slog.Debug("union", "tables", names, "rows", total, "columns", len(cols))
	return b.Build()
}
