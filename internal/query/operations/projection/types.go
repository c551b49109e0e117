package projection

// ColumnRef names a column to keep, optionally under a new name
type ColumnRef struct {
	Column string // Column name (e.g., "altM")
	Alias  string // Optional output name (e.g., "altitude" for "altM AS altitude")
}

// OutputName returns the alias if set, otherwise the column name
func (c ColumnRef) OutputName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Column
}

// Projection represents which columns to keep from a table
// If SelectAll is true, all columns are returned
// Otherwise, only columns in Columns slice are returned, in that order
type Projection struct {
	Columns   []ColumnRef
	SelectAll bool
}

// NewProjection creates a new projection for selecting all columns
func NewProjection() *Projection {
	return &Projection{
		SelectAll: true,
		Columns:   []ColumnRef{},
	}
}

// NewProjectionWithColumns creates a projection for specific columns
func NewProjectionWithColumns(columns ...ColumnRef) *Projection {
	return &Projection{
		SelectAll: false,
		Columns:   columns,
	}
}

// Columns builds a projection of plain column names
func Columns(names ...string) *Projection {
	refs := make([]ColumnRef, len(names))
	for i, n := range names {
		refs[i] = ColumnRef{Column: n}
	}
	return NewProjectionWithColumns(refs...)
}

// AddColumn adds a column to the projection
func (p *Projection) AddColumn(column, alias string) {
	p.Columns = append(p.Columns, ColumnRef{
		Column: column,
		Alias:  alias,
	})
	p.SelectAll = false
}
