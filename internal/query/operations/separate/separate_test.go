package separate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/query/operations/separate"
	. "github.com/leengari/tidytable/internal/query/operations/testutil"
)

func TestSeparate_VegplotCode(t *testing.T) {
	plots := MustTable(t, "plots", []string{"vegplot", "altM"},
		[]data.Value{T("S1T1A"), N(1520)},
		[]data.Value{T("S2T1B"), N(1490)},
	)

	out, err := separate.Separate(plots, "vegplot", []string{"site", "transect", "releve"}, []int{2, 4}, true)
	assert.NilError(t, err)

	AssertColumns(t, out, []string{"site", "transect", "releve", "altM"}, "separate drop source")
	want := [][]data.Value{
		{T("S1"), T("T1"), T("A"), N(1520)},
		{T("S2"), T("T1"), T("B"), N(1490)},
	}
	if diff := cmp.Diff(want, out.Records()); diff != "" {
		t.Errorf("separate records mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparate_KeepSourceAppends(t *testing.T) {
	plots := MustTable(t, "plots", []string{"vegplot", "altM"},
		[]data.Value{T("S1T1A"), N(1520)},
	)

	out, err := separate.Separate(plots, "vegplot", []string{"site", "transect", "releve"}, []int{2, 4}, false)
	assert.NilError(t, err)
	AssertColumns(t, out, []string{"vegplot", "altM", "site", "transect", "releve"}, "separate keep source")
	AssertCell(t, out, 0, "vegplot", "S1T1A", "source retained")
	AssertCell(t, out, 0, "releve", "A", "last piece")
}

func TestSeparate_MissingAndMultibyte(t *testing.T) {
	plots := MustTable(t, "plots", []string{"code"},
		[]data.Value{NA},
		[]data.Value{T("ÄöXYZ")},
	)

	out, err := separate.Separate(plots, "code", []string{"a", "b"}, []int{2}, true)
	assert.NilError(t, err)
	AssertMissingValue(t, out.Value(0, "a"), "missing source")
	AssertMissingValue(t, out.Value(0, "b"), "missing source")
	AssertCell(t, out, 1, "a", "Äö", "offsets count characters")
	AssertCell(t, out, 1, "b", "XYZ", "remainder")
}

func TestSeparate_PreservesRowOrder(t *testing.T) {
	codes := []string{"S3T2B", "S1T1A", "S2T9C", "S1T4A"}
	records := make([][]data.Value, len(codes))
	for i, c := range codes {
		records[i] = []data.Value{T(c)}
	}
	plots := MustTable(t, "plots", []string{"vegplot"}, records...)

	out, err := separate.Separate(plots, "vegplot", []string{"site", "rest"}, []int{2}, false)
	assert.NilError(t, err)
	for i, c := range codes {
		AssertCell(t, out, i, "vegplot", c, "row order")
		AssertCell(t, out, i, "site", c[:2], "row order")
	}
}

func TestSeparate_Errors(t *testing.T) {
	plots := MustTable(t, "plots", []string{"vegplot", "site"},
		[]data.Value{T("S1T1A"), T("x")},
		[]data.Value{T("S1T"), T("y")},
	)

	tests := []struct {
		name    string
		source  string
		into    []string
		offsets []int
		kind    error
	}{
		{"unknown source", "nope", []string{"a", "b"}, []int{1}, errors.ErrUnknownColumn},
		{"offset count", "vegplot", []string{"a", "b", "c"}, []int{2}, errors.ErrConfiguration},
		{"decreasing offsets", "vegplot", []string{"a", "b", "c"}, []int{4, 2}, errors.ErrConfiguration},
		{"zero offset", "vegplot", []string{"a", "b"}, []int{0}, errors.ErrConfiguration},
		{"name collision", "vegplot", []string{"site", "b"}, []int{2}, errors.ErrConfiguration},
		{"single column", "vegplot", []string{"a"}, nil, errors.ErrConfiguration},
		{"too short", "vegplot", []string{"a", "b", "c"}, []int{2, 4}, errors.ErrMalformedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := separate.Separate(plots, tt.source, tt.into, tt.offsets, true)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	_, err := separate.Separate(plots, "vegplot", []string{"a", "b", "c"}, []int{2, 4}, true)
	malformed, ok := err.(*errors.MalformedValueError)
	assert.Assert(t, ok, "expected *MalformedValueError, got %T", err)
	assert.Equal(t, malformed.RowIndex, 1)
	assert.Equal(t, malformed.Value, "S1T")
}

func TestUnite_InverseOfSeparate(t *testing.T) {
	plots := MustTable(t, "plots", []string{"vegplot", "altM"},
		[]data.Value{T("S1T1A"), N(1520)},
		[]data.Value{T("S2T1B"), N(1490)},
	)

	split, err := separate.Separate(plots, "vegplot", []string{"site", "transect", "releve"}, []int{2, 4}, true)
	assert.NilError(t, err)

	joined, err := separate.Unite(split, "vegplot", []string{"site", "transect", "releve"}, "", true)
	assert.NilError(t, err)
	assert.Assert(t, joined.Equal(plots))
}

func TestUnite_MissingAndErrors(t *testing.T) {
	tbl := MustTable(t, "t", []string{"a", "b"},
		[]data.Value{T("x"), NA},
		[]data.Value{T("x"), N(2)},
	)

	out, err := separate.Unite(tbl, "ab", []string{"a", "b"}, "-", false)
	assert.NilError(t, err)
	AssertColumns(t, out, []string{"a", "b", "ab"}, "unite keep sources")
	AssertMissingValue(t, out.Value(0, "ab"), "missing part")
	AssertCell(t, out, 1, "ab", "x-2", "united")

	_, err = separate.Unite(tbl, "a", []string{"b"}, "-", false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
	_, err = separate.Unite(tbl, "ab", []string{"z"}, "-", false)
	assert.ErrorIs(t, err, errors.ErrUnknownColumn)
}
