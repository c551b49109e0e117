// Package render writes tables for people and for other tools.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats lists the accepted output formats
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ValidFormat reports whether format names a known output format
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatMarkdown, "md", FormatCSV, FormatJSON:
		return true
	}
	return false
}

// Table writes t to w in the given format
func Table(w io.Writer, t *schema.Table, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, t)
	case FormatCSV:
		return renderCSV(w, t)
	case FormatMarkdown, "md":
		return renderMarkdown(w, t)
	case FormatText, "":
		return renderText(w, t)
	default:
		return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func newWriter(t *schema.Table) table.Writer {
	tw := table.NewWriter()
	if t.Name() != "" {
		tw.SetTitle(t.Name())
	}

	cols := t.ColumnNames()
	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, rec := range t.Records() {
		row := make(table.Row, len(rec))
		for i, v := range rec {
			row[i] = formatValue(v)
		}
		tw.AppendRow(row)
	}
	return tw
}

func renderText(w io.Writer, t *schema.Table) error {
	if t.Len() == 0 {
		_, _ = fmt.Fprintf(w, "%s (0 rows)\n", t.Name())
		return nil
	}

	tw := newWriter(t)
	tw.SetStyle(table.StyleLight)
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", t.Len())
	return err
}

func renderMarkdown(w io.Writer, t *schema.Table) error {
	tw := newWriter(t)
	_, err := fmt.Fprintln(w, tw.RenderMarkdown())
	return err
}

func renderCSV(w io.Writer, t *schema.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}
	for _, rec := range t.Records() {
		values := make([]string, len(rec))
		for i, v := range rec {
			values[i] = formatValue(v)
		}
		if err := cw.Write(values); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonTable struct {
	Name    string          `json:"name"`
	Columns []schema.Column `json:"columns"`
	Rows    []data.Row      `json:"rows"`
}

func renderJSON(w io.Writer, t *schema.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonTable{
		Name:    t.Name(),
		Columns: t.Columns(),
		Rows:    t.Rows(),
	})
}

func formatValue(v data.Value) string {
	if v.IsMissing() {
		return data.MissingDisplay
	}
	return v.String()
}
