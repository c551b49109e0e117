// Package projection keeps a subset of a table's columns, optionally renamed,
// to build normalized sub-tables.
package projection

import (
	"log/slog"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// Select keeps exactly the named columns, in the given order.
// Row order and row count are unchanged.
func Select(table *schema.Table, columns ...string) (*schema.Table, error) {
	return SelectColumns(table, Columns(columns...))
}

// SelectColumns applies a projection to every row of the table.
// A nil projection or SelectAll keeps every column.
func SelectColumns(table *schema.Table, proj *Projection) (*schema.Table, error) {
	if err := ValidateProjection(table, proj); err != nil {
		return nil, err
	}
	if proj == nil || proj.SelectAll {
		return table, nil
	}

	cols := make([]schema.Column, len(proj.Columns))
	for i, ref := range proj.Columns {
		col, _ := table.Column(ref.Column)
		cols[i] = schema.Column{Name: ref.OutputName(), Type: col.Type}
	}

	b := schema.NewBuilder(table.Name(), cols)
	b.Grow(table.Len())
	for i := 0; i < table.Len(); i++ {
		b.Append(ProjectRow(table, i, proj))
	}

	slog.Debug("select", "table", table.Name(), "columns", len(cols), "rows", table.Len())
	return b.Build()
}

// ProjectRow applies projection to row i of the table
// Returns a new row containing only the requested columns
// If projection is nil or SelectAll is true, returns a copy of the entire row
func ProjectRow(table *schema.Table, i int, proj *Projection) data.Row {
	if proj == nil || proj.SelectAll {
		return table.Row(i)
	}

	projected := data.NewRow(make(map[string]data.Value, len(proj.Columns)))
	for _, colRef := range proj.Columns {
		projected.Set(colRef.OutputName(), table.Value(i, colRef.Column))
	}
	return projected
}

// Distinct drops rows that repeat an earlier row, keeping the first
// occurrence. Used after Select to turn a long table into one row per
// observational unit.
func Distinct(table *schema.Table) (*schema.Table, error) {
	names := table.ColumnNames()
	seen := make(map[string]bool, table.Len())

	b := schema.NewBuilder(table.Name(), table.Columns())
	values := make([]data.Value, len(names))
	for i := 0; i < table.Len(); i++ {
		for j, n := range names {
			values[j] = table.Value(i, n)
		}
		key := data.KeyOf(values...)
		if seen[key] {
			continue
		}
		seen[key] = true
		b.Append(table.Row(i))
	}
	return b.Build()
}
