package testutil

import (
	"testing"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// N and T shorten value literals in fixtures
func N(f float64) data.Value { return data.Number(f) }
func T(s string) data.Value  { return data.Text(s) }

// NA is a missing cell
var NA = data.Missing()

// MustTable builds a table from records or fails the test
func MustTable(t *testing.T, name string, columns []string, records ...[]data.Value) *schema.Table {
	t.Helper()
	table, err := schema.FromRecords(name, columns, records)
	if err != nil {
		t.Fatalf("building table %s: %v", name, err)
	}
	return table
}

// CreateReleveTable creates a wide vegetation survey table: one row per plot,
// one presence column per taxon.
func CreateReleveTable(t *testing.T) *schema.Table {
	t.Helper()
	return MustTable(t, "releves",
		[]string{"site", "altM", "T1", "G1", "H1", "H2"},
		[]data.Value{T("S1T1A"), N(1520), N(1), N(0), N(1), N(1)},
		[]data.Value{T("S1T1B"), N(1535), N(0), N(1), N(1), NA},
		[]data.Value{T("S1T2A"), N(1610), N(1), N(1), N(0), N(1)},
	)
}

// CreatePlotTable creates an eight-column long survey table
func CreatePlotTable(t *testing.T) *schema.Table {
	t.Helper()
	return MustTable(t, "plots",
		[]string{"site", "transect", "releve", "altM", "aspect", "slope", "taxon", "presence"},
		[]data.Value{T("S1"), T("T1"), T("A"), N(1520), T("N"), N(12), T("T1"), N(1)},
		[]data.Value{T("S1"), T("T1"), T("A"), N(1520), T("N"), N(12), T("G1"), N(0)},
		[]data.Value{T("S1"), T("T1"), T("B"), N(1535), T("NE"), N(15), T("T1"), N(0)},
		[]data.Value{T("S1"), T("T2"), T("A"), N(1610), T("E"), N(20), T("H1"), N(1)},
	)
}

// CreateCoverTable creates a three-row per-plot cover table
func CreateCoverTable(t *testing.T, name string, covers ...float64) *schema.Table {
	t.Helper()
	taxa := []string{"Festuca", "Carex", "Salix"}
	records := make([][]data.Value, len(taxa))
	for i, taxon := range taxa {
		cover := NA
		if i < len(covers) {
			cover = N(covers[i])
		}
		records[i] = []data.Value{T(taxon), cover}
	}
	return MustTable(t, name, []string{"taxon", "cover"}, records...)
}
