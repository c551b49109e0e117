// Package metadata holds the on-disk descriptions of stored tables.
package metadata

// DatasetMeta is the meta.json of a dataset directory: a set of tables
// written by one pipeline run.
type DatasetMeta struct {
	Name    string   `json:"name"`
	Version int      `json:"version"`
	RunID   string   `json:"run_id,omitempty"`
	Tables  []string `json:"tables,omitempty"`
}

// TableMeta is the meta.json of a table directory
type TableMeta struct {
	Name     string       `json:"name"`
	Columns  []ColumnMeta `json:"columns"`
	RowCount int64        `json:"row_count,omitempty"`
}

type ColumnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
