// Package errors defines the error kinds returned by table operations.
//
// Every concrete error type matches one sentinel through errors.Is, so callers
// can branch on the kind without caring about the details:
//
//	if errors.Is(err, domainerrors.ErrDuplicateKey) { ... }
package errors

import (
	"fmt"
	"strings"
)

type sentinel string

func (s sentinel) Error() string { return string(s) }

var (
	// ErrConfiguration marks inconsistent parameters supplied by the caller.
	ErrConfiguration error = sentinel("configuration error")
	// ErrUnknownColumn marks a reference to a column the table does not have.
	ErrUnknownColumn error = sentinel("unknown column")
	// ErrDuplicateKey marks an ambiguous spread.
	ErrDuplicateKey error = sentinel("duplicate key")
	// ErrMalformedValue marks a cell that cannot be processed as requested.
	ErrMalformedValue error = sentinel("malformed value")
	// ErrSchemaMismatch marks columns with incompatible value types.
	ErrSchemaMismatch error = sentinel("schema mismatch")
)

// ConfigurationError reports parameters that contradict each other or the table
// (mismatched offset/name counts, name collisions, empty column lists, ...).
type ConfigurationError struct {
	Operation string // operation name, e.g. "gather"
	Parameter string // offending parameter (optional)
	Reason    string
}

func (e *ConfigurationError) Error() string {
	parts := []string{fmt.Sprintf("%s: invalid configuration", e.Operation)}
	if e.Parameter != "" {
		parts = append(parts, fmt.Sprintf("parameter=%s", e.Parameter))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, " - ")
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// UnknownColumnError reports a column name missing from a table.
type UnknownColumnError struct {
	Operation string
	Table     string
	Column    string
}

func (e *UnknownColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: column '%s' does not exist", e.Operation, e.Column)
	}
	return fmt.Sprintf("%s: column '%s' does not exist in table '%s'", e.Operation, e.Column, e.Table)
}

func (e *UnknownColumnError) Is(target error) bool { return target == ErrUnknownColumn }

// DuplicateKeyError reports two rows of the same identity group carrying
// the same key during a spread.
type DuplicateKeyError struct {
	Table    string
	Key      string   // duplicated key value
	Identity []string // rendered identity values of the group
	Rows     []int    // conflicting row positions (0-based)
}

func (e *DuplicateKeyError) Error() string {
	parts := []string{fmt.Sprintf("spread: duplicate key '%s' in table '%s'", e.Key, e.Table)}
	if len(e.Identity) > 0 {
		parts = append(parts, fmt.Sprintf("identity=(%s)", strings.Join(e.Identity, ", ")))
	}
	if len(e.Rows) > 0 {
		parts = append(parts, fmt.Sprintf("rows=%v", e.Rows))
	}
	return strings.Join(parts, " - ")
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// MalformedValueError reports a cell that cannot be processed, such as a
// composite code shorter than the split offsets.
type MalformedValueError struct {
	Operation string
	Column    string
	Value     string
	RowIndex  int // -1 if unknown
	Reason    string
}

func (e *MalformedValueError) Error() string {
	parts := []string{fmt.Sprintf("%s: malformed value in column '%s'", e.Operation, e.Column)}
	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", e.Value))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}
	return strings.Join(parts, " - ")
}

func (e *MalformedValueError) Is(target error) bool { return target == ErrMalformedValue }

// SchemaMismatchError reports a column whose values do not agree on a type.
type SchemaMismatchError struct {
	Operation string
	Table     string
	Column    string
	Expected  string
	Actual    string
}

func (e *SchemaMismatchError) Error() string {
	parts := []string{fmt.Sprintf("%s: schema mismatch on column '%s'", e.Operation, e.Column)}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}
	parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual))
	return strings.Join(parts, " - ")
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

func NewConfigurationError(operation, parameter, reason string) *ConfigurationError {
	return &ConfigurationError{Operation: operation, Parameter: parameter, Reason: reason}
}

func NewUnknownColumn(operation, table, column string) *UnknownColumnError {
	return &UnknownColumnError{Operation: operation, Table: table, Column: column}
}

func NewMalformedValue(operation, column, value string, rowIndex int, reason string) *MalformedValueError {
	return &MalformedValueError{
		Operation: operation,
		Column:    column,
		Value:     value,
		RowIndex:  rowIndex,
		Reason:    reason,
	}
}

func NewSchemaMismatch(operation, table, column, expected, actual string) *SchemaMismatchError {
	return &SchemaMismatchError{
		Operation: operation,
		Table:     table,
		Column:    column,
		Expected:  expected,
		Actual:    actual,
	}
}
