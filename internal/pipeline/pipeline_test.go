package pipeline_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/pipeline"
	. "github.com/leengari/tidytable/internal/query/operations/testutil"
)

func TestChain_GatherSeparateSelect(t *testing.T) {
	wide := CreateReleveTable(t)

	out, err := pipeline.From(wide).
		Gather("taxon", "presence", []string{"T1", "G1", "H1", "H2"}, false).
		Separate("site", []string{"site", "transect", "releve"}, []int{2, 4}, true).
		Select("site", "transect", "releve", "altM").
		Distinct().
		Table()
	assert.NilError(t, err)

	AssertColumns(t, out, []string{"site", "transect", "releve", "altM"}, "normalized plots")
	AssertRowCount(t, out.Len(), 3, "normalized plots")
}

func TestChain_StopsAtFirstError(t *testing.T) {
	wide := CreateReleveTable(t)

	c := pipeline.From(wide).
		Select("nope").
		Gather("taxon", "presence", []string{"T1"}, false)
	_, err := c.Table()
	assert.ErrorIs(t, err, errors.ErrUnknownColumn)
	assert.ErrorIs(t, c.Err(), errors.ErrUnknownColumn)
}

func TestChain_TagUnion(t *testing.T) {
	a := CreateCoverTable(t, "S2T1A", 1, 2, 3)
	b := CreateCoverTable(t, "S2T1B", 4, 5, 6)
	tb, err := pipeline.From(b).Tag("vegplot", data.Text("S2T1B")).Table()
	assert.NilError(t, err)

	out, err := pipeline.From(a).Tag("vegplot", data.Text("S2T1A")).Union(tb).Table()
	assert.NilError(t, err)
	AssertRowCount(t, out.Len(), 6, "union")
}

func TestApply_SelectRename(t *testing.T) {
	plots := CreatePlotTable(t)

	out, err := pipeline.Apply(plots, pipeline.Step{
		Op:      pipeline.OpSelect,
		Columns: []string{"site", "altM"},
		Rename:  map[string]string{"altM": "altitude"},
	})
	assert.NilError(t, err)
	AssertColumns(t, out, []string{"site", "altitude"}, "rename")
}

func TestApply_Unite(t *testing.T) {
	plots := CreatePlotTable(t)

	out, err := pipeline.Apply(plots, pipeline.Step{
		Op:         pipeline.OpUnite,
		Column:     "vegplot",
		Columns:    []string{"site", "transect", "releve"},
		DropSource: true,
	})
	assert.NilError(t, err)
	AssertCell(t, out, 0, "vegplot", "S1T1A", "unite")
	assert.Equal(t, out.ColumnNames()[0], "vegplot")
}

func TestParseDefinition(t *testing.T) {
	def, err := pipeline.ParseDefinition(strings.NewReader(`
name: demo
sources:
  - {name: a, path: data/a.csv}
  - {name: b, path: tables/b}
  - {name: c, path: survey.db, query: "SELECT * FROM plots"}
steps:
  - {op: distinct}
`))
	assert.NilError(t, err)
	assert.Equal(t, def.Sources[0].Format, pipeline.FormatCSV)
	assert.Equal(t, def.Sources[1].Format, pipeline.FormatJSON)
	assert.Equal(t, def.Sources[2].Format, pipeline.FormatSQLite)
}

func TestParseDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{"empty", ``, "empty pipeline definition"},
		{"no name", `sources: [{name: a, path: a.csv}]`, "name is required"},
		{"no sources", `name: x`, "at least one source"},
		{"duplicate source", "name: x\nsources: [{name: a, path: a.csv}, {name: a, path: b.csv}]", "duplicate name"},
		{"unknown format", "name: x\nsources: [{name: a, path: a.xlsx}]", "unknown format"},
		{"sqlite without query", "name: x\nsources: [{name: a, path: a.db}]", "need a query"},
		{"unknown op", "name: x\nsources: [{name: a, path: a.csv}]\nsteps: [{op: pivot}]", "unknown op"},
		{"gather without key", "name: x\nsources: [{name: a, path: a.csv}]\nsteps: [{op: gather, value: v, columns: [a]}]", "key, value and columns"},
		{"unknown field", "name: x\ncolour: red\nsources: [{name: a, path: a.csv}]", "colour"},
		{"rename of unselected column", "name: x\nsources: [{name: a, path: a.csv}]\nsteps: [{op: select, columns: [site], rename: {altM: altitude}}]", `rename "altM": column is not selected`},
		{"rename outside select", "name: x\nsources: [{name: a, path: a.csv}]\nsteps: [{op: distinct, rename: {a: b}}]", "rename is only valid for select"},
		{"output without columns", "name: x\nsources: [{name: a, path: a.csv}]\noutputs: [{name: o}]", "columns are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.ParseDefinition(strings.NewReader(tt.yaml))
			assert.ErrorContains(t, err, tt.errPart)
		})
	}
}

func TestLoadDefinition_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("name: x\nsources: [{name: a, path: data/a.csv}]\n"), 0644))

	def, err := pipeline.LoadDefinition(path)
	assert.NilError(t, err)
	assert.Equal(t, def.ResolvePath("data/a.csv"), filepath.Join(dir, "data/a.csv"))
	assert.Equal(t, def.ResolvePath("/abs/a.csv"), "/abs/a.csv")
}
