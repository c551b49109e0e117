package schema

import (
	"fmt"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
)

// Table is an immutable, named table: an ordered column list plus ordered rows.
// Every row carries a cell for every column. Tables are only built through
// NewTable, FromRecords or a Builder, and accessors hand out copies, so a
// Table value never changes after construction.
type Table struct {
	name   string
	schema *TableSchema
	rows   []data.Row
}

// NewTable validates columns and rows and returns a table holding copies of them.
// Columns declared with an empty or UNKNOWN type get their type from the data.
func NewTable(name string, columns []Column, rows []data.Row) (*Table, error) {
	b := NewBuilder(name, columns)
	for _, row := range rows {
		b.Append(row.Copy())
	}
	return b.Build()
}

// FromRecords builds a table from positional records, one value per column.
func FromRecords(name string, columns []string, records [][]data.Value) (*Table, error) {
	cols := make([]Column, len(columns))
	for i, c := range columns {
		cols[i] = Column{Name: c}
	}
	b := NewBuilder(name, cols)
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, errors.NewConfigurationError("table", "records",
				fmt.Sprintf("record %d has %d values, expected %d", i, len(rec), len(columns)))
		}
		row := data.NewRow(make(map[string]data.Value, len(columns)))
		for j, c := range columns {
			row.Set(c, rec[j])
		}
		b.Append(row)
	}
	return b.Build()
}

func (t *Table) Name() string { return t.name }

// Len returns the number of rows
func (t *Table) Len() int { return len(t.rows) }

// NumColumns returns the number of columns
func (t *Table) NumColumns() int { return len(t.schema.Columns) }

// Schema returns a copy of the table schema
func (t *Table) Schema() *TableSchema { return t.schema.Copy() }

// Columns returns a copy of the column list in order
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.schema.Columns))
	copy(cols, t.schema.Columns)
	return cols
}

func (t *Table) ColumnNames() []string { return t.schema.ColumnNames() }

func (t *Table) Column(name string) (Column, bool) { return t.schema.GetColumn(name) }

func (t *Table) HasColumn(name string) bool { return t.schema.HasColumn(name) }

// Value returns the cell at row i in the named column.
// It panics if i is out of range, like a slice index.
func (t *Table) Value(i int, column string) data.Value {
	return t.rows[i].Get(column)
}

// Row returns a copy of row i
func (t *Table) Row(i int) data.Row {
	return t.rows[i].Copy()
}

// Rows returns copies of all rows in order
func (t *Table) Rows() []data.Row {
	rows := make([]data.Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.Copy()
	}
	return rows
}

// Records returns the rows as positional records in column order
func (t *Table) Records() [][]data.Value {
	names := t.schema.ColumnNames()
	out := make([][]data.Value, len(t.rows))
	for i, r := range t.rows {
		rec := make([]data.Value, len(names))
		for j, n := range names {
			rec[j] = r.Get(n)
		}
		out[i] = rec
	}
	return out
}

// WithName returns the same table under another name
func (t *Table) WithName(name string) *Table {
	return &Table{name: name, schema: &TableSchema{TableName: name, Columns: t.schema.Columns}, rows: t.rows}
}

// Equal reports whether both tables have the same columns (names, types and
// order) and the same rows in the same order. Table names are ignored.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.schema.Columns) != len(other.schema.Columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i, col := range t.schema.Columns {
		if other.schema.Columns[i] != col {
			return false
		}
	}
	for i, row := range t.rows {
		for _, col := range t.schema.Columns {
			if !row.Get(col.Name).Equal(other.rows[i].Get(col.Name)) {
				return false
			}
		}
	}
	return true
}

// Builder assembles a table row by row. Appended rows are owned by the
// builder; callers must not touch them afterwards. A Builder is single-use.
type Builder struct {
	name    string
	columns []Column
	rows    []data.Row
}

func NewBuilder(name string, columns []Column) *Builder {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Builder{name: name, columns: cols}
}

// Grow preallocates room for n more rows
func (b *Builder) Grow(n int) {
	if cap(b.rows)-len(b.rows) < n {
		rows := make([]data.Row, len(b.rows), len(b.rows)+n)
		copy(rows, b.rows)
		b.rows = rows
	}
}

func (b *Builder) Append(row data.Row) {
	if row.Data == nil {
		row = data.NewRow(nil)
	}
	b.rows = append(b.rows, row)
}

// Build checks the table invariants, fills absent cells with missing values
// and settles every column type.
func (b *Builder) Build() (*Table, error) {
	index := make(map[string]int, len(b.columns))
	for i, col := range b.columns {
		if col.Name == "" {
			return nil, errors.NewConfigurationError("table", "columns",
				fmt.Sprintf("column %d has an empty name", i))
		}
		if _, dup := index[col.Name]; dup {
			return nil, errors.NewConfigurationError("table", "columns",
				fmt.Sprintf("duplicate column name '%s'", col.Name))
		}
		if col.Type == "" {
			b.columns[i].Type = ColumnTypeUnknown
		} else if !col.Type.Valid() {
			return nil, errors.NewConfigurationError("table", "columns",
				fmt.Sprintf("column '%s' has unknown type %s", col.Name, col.Type))
		}
		index[col.Name] = i
	}

	for _, row := range b.rows {
		for name := range row.Data {
			if _, ok := index[name]; !ok {
				return nil, errors.NewUnknownColumn("table", b.name, name)
			}
		}
		for i, col := range b.columns {
			v, ok := row.Data[col.Name]
			if !ok {
				row.Data[col.Name] = data.Missing()
				continue
			}
			merged, ok := Merge(col.Type, TypeOf(v))
			if !ok {
				return nil, errors.NewSchemaMismatch("table", b.name, col.Name,
					string(col.Type), string(TypeOf(v)))
			}
			b.columns[i].Type = merged
		}
	}

	t := &Table{
		name:   b.name,
		schema: &TableSchema{TableName: b.name, Columns: b.columns},
		rows:   b.rows,
	}
	if t.rows == nil {
		t.rows = []data.Row{}
	}
	b.columns, b.rows = nil, nil
	return t, nil
}
