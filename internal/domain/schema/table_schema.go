package schema

// TableSchema is the ordered column list of a table
type TableSchema struct {
	TableName string
	Columns   []Column
}

// ColumnIndex returns the position of the named column, or -1
func (s *TableSchema) ColumnIndex(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// GetColumn returns the named column
func (s *TableSchema) GetColumn(name string) (Column, bool) {
	if i := s.ColumnIndex(name); i >= 0 {
		return s.Columns[i], true
	}
	return Column{}, false
}

// HasColumn reports whether the schema contains the named column
func (s *TableSchema) HasColumn(name string) bool {
	return s.ColumnIndex(name) >= 0
}

// ColumnNames returns column names in schema order
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Copy returns a schema that shares nothing with s
func (s *TableSchema) Copy() *TableSchema {
	cols := make([]Column, len(s.Columns))
	copy(cols, s.Columns)
	return &TableSchema{TableName: s.TableName, Columns: cols}
}
