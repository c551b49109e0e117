package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leengari/tidytable/internal/cli/config"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/pipeline"
	"github.com/leengari/tidytable/internal/storage"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var (
		format     string
		query      string
		name       string
		schemaOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Print a stored table",
		Long: `Print a CSV file, a JSON table or dataset directory, or the result of a
query against a SQLite database.

The format is guessed from the path unless --format is given.`,
		Example: `  tidy show transect_T1.csv
  tidy show out/survey
  tidy show survey.db --query "SELECT * FROM plots"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			path := args[0]

			if format == "" {
				format = pipeline.FormatFromPath(path)
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			var tables []*schema.Table
			switch {
			case format == pipeline.FormatJSON && isDataset(path):
				ds, err := storage.LoadDataset(path)
				if err != nil {
					return err
				}
				tables = ds.Tables
			case format == pipeline.FormatSQLite && query == "":
				query = fmt.Sprintf("SELECT * FROM %q", name)
				fallthrough
			default:
				src := pipeline.Source{Name: name, Format: format, Path: path, Query: query}
				t, err := storage.NewLoader(cfg.CSVOptions()).Load(cmd.Context(), src, path)
				if err != nil {
					return err
				}
				tables = []*schema.Table{t}
			}

			if schemaOnly {
				for _, t := range tables {
					renderSchema(cmd.OutOrStdout(), t)
				}
				return nil
			}
			return printTables(cmd.OutOrStdout(), tables, cfg.OutputFormat)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Source format (csv|json|sqlite)")
	cmd.Flags().StringVar(&query, "query", "", "SQL query for SQLite sources")
	cmd.Flags().StringVar(&name, "name", "", "Table name (defaults to the file name)")
	cmd.Flags().BoolVar(&schemaOnly, "schema", false, "Print column names and types only")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatCSV, pipeline.FormatJSON, pipeline.FormatSQLite}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// isDataset reports whether dir is a dataset directory rather than a table
// directory: datasets keep their tables in subdirectories.
func isDataset(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			if _, err := os.Stat(filepath.Join(dir, e.Name(), "meta.json")); err == nil {
				return true
			}
		}
	}
	return false
}

func renderSchema(w io.Writer, t *schema.Table) {
	_, _ = fmt.Fprintf(w, "Table: %s (%d rows)\n", t.Name(), t.Len())

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Column", "Type"})
	for _, col := range t.Columns() {
		tw.AppendRow(table.Row{col.Name, string(col.Type)})
	}
	tw.Render()
}
