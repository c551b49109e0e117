package data

import (
	"encoding/json"
)

// Row represents a single table row
// Key = column name, Value = cell value
type Row struct {
	Data map[string]Value
}

// NewRow creates a new Row with the given data
func NewRow(data map[string]Value) Row {
	if data == nil {
		data = make(map[string]Value)
	}
	return Row{Data: data}
}

// Copy creates a copy of the row to prevent mutation
func (r Row) Copy() Row {
	copy := make(map[string]Value, len(r.Data))
	for k, v := range r.Data {
		copy[k] = v
	}
	return Row{Data: copy}
}

// Get returns the cell for column, or a missing value when the row has none
func (r Row) Get(column string) Value {
	return r.Data[column]
}

// Has reports whether the row carries a cell for column
func (r Row) Has(column string) bool {
	_, ok := r.Data[column]
	return ok
}

// Set stores a cell. Only use on rows you own.
func (r Row) Set(column string, v Value) {
	r.Data[column] = v
}

// UnmarshalJSON implements json.Unmarshaler interface
// This allows Row to be unmarshaled from JSON as a map
func (r *Row) UnmarshalJSON(data []byte) error {
	var m map[string]Value
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	r.Data = m
	return nil
}

// MarshalJSON implements json.Marshaler interface
// This allows Row to be marshaled to JSON as a map
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Data)
}
