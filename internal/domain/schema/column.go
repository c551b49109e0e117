package schema

import "github.com/leengari/tidytable/internal/domain/data"

type ColumnType string

const (
	ColumnTypeNumber ColumnType = "NUMBER"
	ColumnTypeText   ColumnType = "TEXT"
	// ColumnTypeUnknown is held by columns whose cells are all missing.
	// It is compatible with every other type.
	ColumnTypeUnknown ColumnType = "UNKNOWN"
)

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// TypeOf returns the column type a single value implies
func TypeOf(v data.Value) ColumnType {
	switch v.Kind() {
	case data.KindNumber:
		return ColumnTypeNumber
	case data.KindText:
		return ColumnTypeText
	default:
		return ColumnTypeUnknown
	}
}

// Valid reports whether t is one of the known column types
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeNumber, ColumnTypeText, ColumnTypeUnknown:
		return true
	}
	return false
}

// Compatible reports whether values of both types can share a column
func Compatible(a, b ColumnType) bool {
	return a == b || a == ColumnTypeUnknown || b == ColumnTypeUnknown
}

// Merge returns the type a column gets when it holds values of both types.
// ok is false when the types conflict.
func Merge(a, b ColumnType) (ColumnType, bool) {
	switch {
	case a == b:
		return a, true
	case a == ColumnTypeUnknown:
		return b, true
	case b == ColumnTypeUnknown:
		return a, true
	}
	return "", false
}
