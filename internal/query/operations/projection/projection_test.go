package projection_test

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/query/operations/projection"
	"github.com/leengari/tidytable/internal/query/operations/testutil"
)

// TestProjection_SelectAll tests that a SelectAll projection keeps every column
func TestProjection_SelectAll(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	result, err := projection.SelectColumns(table, projection.NewProjection())
	testutil.AssertNoError(t, err, "SELECT *")

	testutil.AssertRowCount(t, result.Len(), 4, "SELECT *")
	testutil.AssertColumnCount(t, result.NumColumns(), 8, "SELECT *")
}

// TestProjection_SelectSpecificColumns selects four of eight columns
func TestProjection_SelectSpecificColumns(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	result, err := projection.Select(table, "site", "transect", "releve", "altM")
	testutil.AssertNoError(t, err, "select plot columns")

	testutil.AssertRowCount(t, result.Len(), table.Len(), "select plot columns")
	testutil.AssertColumns(t, result, []string{"site", "transect", "releve", "altM"}, "select plot columns")
	testutil.AssertColumnNotExists(t, result.Row(0), "taxon", "projected row")

	col, _ := result.Column("altM")
	assert.Equal(t, col.Type, schema.ColumnTypeNumber)
}

// TestProjection_PreservesRowOrder checks that projection never reorders rows
func TestProjection_PreservesRowOrder(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	result, err := projection.Select(table, "taxon", "releve")
	testutil.AssertNoError(t, err, "select")
	for i := 0; i < table.Len(); i++ {
		assert.DeepEqual(t, result.Value(i, "taxon"), table.Value(i, "taxon"))
		assert.DeepEqual(t, result.Value(i, "releve"), table.Value(i, "releve"))
	}
	testutil.AssertColumns(t, result, []string{"taxon", "releve"}, "requested order")
}

// TestProjection_Idempotent checks select(select(T, C), C) == select(T, C)
func TestProjection_Idempotent(t *testing.T) {
	table := testutil.CreatePlotTable(t)
	cols := []string{"site", "altM", "presence"}

	once, err := projection.Select(table, cols...)
	testutil.AssertNoError(t, err, "first select")
	twice, err := projection.Select(once, cols...)
	testutil.AssertNoError(t, err, "second select")

	assert.Assert(t, twice.Equal(once))
}

// TestProjection_WithAlias tests column renaming
func TestProjection_WithAlias(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	proj := projection.NewProjectionWithColumns(
		projection.ColumnRef{Column: "altM", Alias: "altitude"},
		projection.ColumnRef{Column: "site"},
	)
	result, err := projection.SelectColumns(table, proj)
	testutil.AssertNoError(t, err, "aliased projection")

	testutil.AssertColumns(t, result, []string{"altitude", "site"}, "aliased projection")
	testutil.AssertCell(t, result, 0, "altitude", "1520", "aliased projection")
}

// TestProjection_ValidateProjection tests projection validation
func TestProjection_ValidateProjection(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	err := projection.ValidateProjection(table, projection.Columns("site", "taxon"))
	testutil.AssertNoError(t, err, "valid projection")

	err = projection.ValidateProjection(table, projection.Columns("nonexistent"))
	assert.ErrorIs(t, err, errors.ErrUnknownColumn)

	err = projection.ValidateProjection(table, projection.Columns("site", "site"))
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	_, err = projection.Select(table)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
}

// TestProjection_ProjectRow tests single-row projection
func TestProjection_ProjectRow(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	row := projection.ProjectRow(table, 2, projection.Columns("releve"))
	testutil.AssertColumnExists(t, row, "releve", "projected row")
	assert.Equal(t, len(row.Data), 1)

	full := projection.ProjectRow(table, 2, nil)
	assert.Equal(t, len(full.Data), 8)
}

// TestDistinct_NormalizedSubTable builds one row per plot from the long table
func TestDistinct_NormalizedSubTable(t *testing.T) {
	table := testutil.CreatePlotTable(t)

	plots, err := projection.Select(table, "site", "transect", "releve", "altM")
	testutil.AssertNoError(t, err, "select")
	unique, err := projection.Distinct(plots)
	testutil.AssertNoError(t, err, "distinct")

	testutil.AssertRowCount(t, unique.Len(), 3, "distinct plots")
	testutil.AssertCell(t, unique, 1, "releve", "B", "first occurrences keep their order")

	withMissing := testutil.MustTable(t, "m", []string{"a"},
		[]data.Value{testutil.NA},
		[]data.Value{testutil.T("NA")},
		[]data.Value{testutil.NA},
	)
	unique, err = projection.Distinct(withMissing)
	testutil.AssertNoError(t, err, "distinct with missing")
	testutil.AssertRowCount(t, unique.Len(), 2, "missing differs from the text NA")

	zeros := testutil.MustTable(t, "z", []string{"cover"},
		[]data.Value{testutil.N(0)},
		[]data.Value{testutil.N(math.Copysign(0, -1))},
	)
	unique, err = projection.Distinct(zeros)
	testutil.AssertNoError(t, err, "distinct zeros")
	testutil.AssertRowCount(t, unique.Len(), 1, "negative zero equals zero")
}
