package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/leengari/tidytable/internal/domain/data"
	domainerrors "github.com/leengari/tidytable/internal/domain/errors"
)

func TestMerge(t *testing.T) {
	got, ok := Merge(ColumnTypeUnknown, ColumnTypeNumber)
	assert.Check(t, ok)
	assert.Equal(t, got, ColumnTypeNumber)

	got, ok = Merge(ColumnTypeText, ColumnTypeUnknown)
	assert.Check(t, ok)
	assert.Equal(t, got, ColumnTypeText)

	_, ok = Merge(ColumnTypeText, ColumnTypeNumber)
	assert.Check(t, !ok)

	assert.Check(t, Compatible(ColumnTypeUnknown, ColumnTypeText))
	assert.Check(t, !Compatible(ColumnTypeNumber, ColumnTypeText))
	assert.Check(t, !ColumnType("INT").Valid())
}

func TestFromRecords_InfersTypes(t *testing.T) {
	table, err := FromRecords("releves",
		[]string{"site", "altM", "note"},
		[][]data.Value{
			{data.Text("S1T1A"), data.Number(1520), data.Missing()},
			{data.Text("S1T1B"), data.Missing(), data.Missing()},
		})
	assert.NilError(t, err)

	want := []Column{
		{Name: "site", Type: ColumnTypeText},
		{Name: "altM", Type: ColumnTypeNumber},
		{Name: "note", Type: ColumnTypeUnknown},
	}
	if diff := cmp.Diff(want, table.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, table.Len(), 2)
	assert.Equal(t, table.NumColumns(), 3)
	assert.Check(t, table.Value(1, "altM").IsMissing())
}

func TestNewTable_FillsAbsentCells(t *testing.T) {
	rows := []data.Row{
		data.NewRow(map[string]data.Value{"site": data.Text("S1")}),
	}
	table, err := NewTable("plots", []Column{{Name: "site"}, {Name: "altM", Type: ColumnTypeNumber}}, rows)
	assert.NilError(t, err)

	assert.Check(t, table.Value(0, "altM").IsMissing())
	assert.Check(t, !rows[0].Has("altM"), "input rows are copied")

	col, ok := table.Column("altM")
	assert.Check(t, ok)
	assert.Equal(t, col.Type, ColumnTypeNumber)
}

func TestTable_Immutable(t *testing.T) {
	table, err := FromRecords("t", []string{"a"}, [][]data.Value{{data.Text("x")}})
	assert.NilError(t, err)

	row := table.Row(0)
	row.Set("a", data.Text("changed"))
	table.Rows()[0].Set("a", data.Text("changed"))
	table.Columns()[0].Name = "b"
	table.Schema().Columns[0].Name = "b"

	assert.Check(t, table.Value(0, "a").Equal(data.Text("x")))
	assert.DeepEqual(t, table.ColumnNames(), []string{"a"})
}

func TestTable_EqualIgnoresName(t *testing.T) {
	a, err := FromRecords("a", []string{"x"}, [][]data.Value{{data.Number(1)}})
	assert.NilError(t, err)
	b := a.WithName("b")

	assert.Equal(t, b.Name(), "b")
	assert.Equal(t, b.Schema().TableName, "b")
	assert.Check(t, a.Equal(b))

	c, err := FromRecords("a", []string{"x"}, [][]data.Value{{data.Text("1")}})
	assert.NilError(t, err)
	assert.Check(t, !a.Equal(c))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		rows    []data.Row
		want    error
	}{
		{
			name:    "empty column name",
			columns: []Column{{Name: ""}},
			want:    domainerrors.ErrConfiguration,
		},
		{
			name:    "duplicate column",
			columns: []Column{{Name: "a"}, {Name: "a"}},
			want:    domainerrors.ErrConfiguration,
		},
		{
			name:    "unknown type",
			columns: []Column{{Name: "a", Type: "DATE"}},
			want:    domainerrors.ErrConfiguration,
		},
		{
			name:    "cell for unknown column",
			columns: []Column{{Name: "a"}},
			rows:    []data.Row{data.NewRow(map[string]data.Value{"b": data.Text("x")})},
			want:    domainerrors.ErrUnknownColumn,
		},
		{
			name:    "mixed types in one column",
			columns: []Column{{Name: "a"}},
			rows: []data.Row{
				data.NewRow(map[string]data.Value{"a": data.Text("x")}),
				data.NewRow(map[string]data.Value{"a": data.Number(1)}),
			},
			want: domainerrors.ErrSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable("t", tt.columns, tt.rows)
			assert.Assert(t, err != nil)
			assert.Check(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFromRecords_WrongWidth(t *testing.T) {
	_, err := FromRecords("t", []string{"a", "b"}, [][]data.Value{{data.Text("x")}})
	assert.Check(t, errors.Is(err, domainerrors.ErrConfiguration))
	assert.ErrorContains(t, err, "record 0 has 1 values")
}
