package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/query/operations/testutil"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, Table(&buf, testutil.CreateReleveTable(t), FormatText))

	out := buf.String()
	assert.Check(t, is.Contains(out, "S1T1B"))
	assert.Check(t, is.Contains(out, "1535"))
	assert.Check(t, is.Contains(out, "NA"))
	assert.Check(t, is.Contains(out, "(3 rows)"))
}

func TestRender_TextEmpty(t *testing.T) {
	empty := testutil.MustTable(t, "empty", []string{"site"})

	var buf bytes.Buffer
	assert.NilError(t, Table(&buf, empty, FormatText))
	assert.Equal(t, buf.String(), "empty (0 rows)\n")
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, Table(&buf, testutil.CreateCoverTable(t, "cover", 12.5), FormatMarkdown))

	out := buf.String()
	assert.Check(t, is.Contains(out, "| taxon | cover |"))
	assert.Check(t, is.Contains(out, "| Festuca | 12.5 |"))
	assert.Check(t, is.Contains(out, "| Carex | NA |"))
}

func TestRender_CSV(t *testing.T) {
	table := testutil.MustTable(t, "notes",
		[]string{"site", "note"},
		[]data.Value{testutil.T("S1"), testutil.T("wet, shaded")},
		[]data.Value{testutil.T("S2"), testutil.NA},
	)

	var buf bytes.Buffer
	assert.NilError(t, Table(&buf, table, FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.DeepEqual(t, lines, []string{
		"site,note",
		`S1,"wet, shaded"`,
		"S2,NA",
	})
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, Table(&buf, testutil.CreateCoverTable(t, "cover", 1), FormatJSON))

	var decoded jsonTable
	assert.NilError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, decoded.Name, "cover")
	assert.Assert(t, is.Len(decoded.Rows, 3))
	assert.Check(t, decoded.Rows[0].Get("cover").Equal(data.Number(1)))
	assert.Check(t, decoded.Rows[2].Get("cover").IsMissing())
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Table(&bytes.Buffer{}, testutil.CreateReleveTable(t), "xml")
	assert.ErrorContains(t, err, "unknown output format")
	assert.Check(t, !ValidFormat("xml"))
	assert.Check(t, ValidFormat("md"))
}
