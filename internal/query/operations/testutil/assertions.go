package testutil

import (
	"reflect"
	"testing"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if a table has the expected number of columns
func AssertColumnCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
}

// AssertColumns checks the exact column names and order of a table
func AssertColumns(t *testing.T, table *schema.Table, expected []string, context string) {
	t.Helper()
	if got := table.ColumnNames(); !reflect.DeepEqual(got, expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, got)
	}
}

// AssertColumnExists checks if a column exists in a row
func AssertColumnExists(t *testing.T, row data.Row, column, context string) {
	t.Helper()
	if !row.Has(column) {
		t.Errorf("%s: expected column '%s' to exist", context, column)
	}
}

// AssertColumnNotExists checks if a column does not exist in a row
func AssertColumnNotExists(t *testing.T, row data.Row, column, context string) {
	t.Helper()
	if row.Has(column) {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertMissingValue checks that a cell is missing
func AssertMissingValue(t *testing.T, value data.Value, context string) {
	t.Helper()
	if !value.IsMissing() {
		t.Errorf("%s: expected missing value, got: %v", context, value)
	}
}

// AssertCell checks the rendered content of one cell
func AssertCell(t *testing.T, table *schema.Table, row int, column, expected string, context string) {
	t.Helper()
	if got := table.Value(row, column).String(); got != expected {
		t.Errorf("%s: row %d column '%s': expected %q, got %q", context, row, column, expected, got)
	}
}
