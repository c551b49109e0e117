package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// DefaultMissingTokens are the cell texts read as missing values
var DefaultMissingTokens = []string{"", "NA"}

// CSVOptions control how delimited files are read
type CSVOptions struct {
	Delimiter     rune     // defaults to ',' (or '\t' for .tsv files)
	MissingTokens []string // defaults to DefaultMissingTokens
	// KeepText disables number detection; every column is read as TEXT.
	KeepText bool
}

// LoadCSV reads a delimited file with a header row. The table is named
// after the file without its extension.
func LoadCSV(path string, opts CSVOptions) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	if opts.Delimiter == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Delimiter = '\t'
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	table, err := ReadCSV(f, name, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("table loaded",
		slog.String("table", table.Name()),
		slog.String("path", path),
		slog.Int("rows", table.Len()),
	)
	return table, nil
}

// ReadCSV parses delimited text with a header row.
//
// Cells are trimmed before anything else. A column is NUMBER when every
// non-missing cell parses as a finite number, otherwise TEXT; a column with
// only missing cells stays UNKNOWN. NaN and Inf cells are kept as text.
func ReadCSV(r io.Reader, name string, opts CSVOptions) (*schema.Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	missing := opts.MissingTokens
	if missing == nil {
		missing = DefaultMissingTokens
	}
	isMissing := make(map[string]bool, len(missing))
	for _, tok := range missing {
		isMissing[tok] = true
	}

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		records = append(records, rec)
	}

	for _, rec := range records {
		for j := range rec {
			rec[j] = strings.TrimSpace(rec[j])
		}
	}

	numeric := make([]bool, len(headers))
	for j := range headers {
		numeric[j] = !opts.KeepText
	}
	for _, rec := range records {
		for j, cell := range rec {
			if !numeric[j] || isMissing[cell] {
				continue
			}
			if _, ok := parseFinite(cell); !ok {
				numeric[j] = false
			}
		}
	}

	values := make([][]data.Value, len(records))
	for i, rec := range records {
		row := make([]data.Value, len(headers))
		for j, cell := range rec {
			switch {
			case isMissing[cell]:
				row[j] = data.Missing()
			case numeric[j]:
				f, _ := parseFinite(cell)
				row[j] = data.Number(f)
			default:
				row[j] = data.Text(cell)
			}
		}
		values[i] = row
	}

	return schema.FromRecords(name, headers, values)
}

// parseFinite accepts only finite numbers; strconv also parses NaN and Inf.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
