// Package commands implements the tidy subcommands.
package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leengari/tidytable/internal/cli/config"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/engine"
	"github.com/leengari/tidytable/internal/pipeline"
	"github.com/leengari/tidytable/internal/render"
	"github.com/leengari/tidytable/internal/storage"
	"github.com/leengari/tidytable/internal/storage/writer"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var showFinal bool

	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Run a pipeline definition",
		Long: `Load the pipeline's sources, apply its steps in order and print
each output table.

Outputs can also be saved as a JSON dataset (--save-dir) or as tables of a
SQLite database (--sqlite).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			def, err := pipeline.LoadDefinition(args[0])
			if err != nil {
				return err
			}

			eng := engine.New(storage.NewLoader(cfg.CSVOptions()), logger)
			eng.AddObserver(engine.NewLoggingObserver(logger))

			result, err := eng.Run(cmd.Context(), def)
			if err != nil {
				return err
			}

			tables := result.Outputs
			if len(tables) == 0 || showFinal {
				tables = append([]*schema.Table{result.Table}, tables...)
			}

			if err := printTables(cmd.OutOrStdout(), tables, cfg.OutputFormat); err != nil {
				return err
			}
			return saveTables(cmd, cfg, result, tables)
		},
	}

	cmd.Flags().BoolVar(&showFinal, "final", false, "Also print the table produced by the last step")
	cmd.Flags().String("save-dir", "", "Save outputs as a JSON dataset in this directory")
	cmd.Flags().String("sqlite", "", "Save outputs as tables of this SQLite database")

	return cmd
}

func printTables(w io.Writer, tables []*schema.Table, format string) error {
	for i, t := range tables {
		if i > 0 && format != render.FormatJSON {
			_, _ = fmt.Fprintln(w)
		}
		if err := render.Table(w, t, format); err != nil {
			return fmt.Errorf("rendering %s: %w", t.Name(), err)
		}
	}
	return nil
}

func saveTables(cmd *cobra.Command, cfg *config.Config, result *engine.Result, tables []*schema.Table) error {
	saveDir := cfg.SaveDir
	if cmd.Flags().Changed("save-dir") {
		saveDir, _ = cmd.Flags().GetString("save-dir")
	}
	sqlitePath := cfg.SQLitePath
	if cmd.Flags().Changed("sqlite") {
		sqlitePath, _ = cmd.Flags().GetString("sqlite")
	}

	if saveDir != "" {
		dir := filepath.Join(saveDir, result.Pipeline)
		if err := writer.SaveDataset(dir, result.Pipeline, result.RunID, tables); err != nil {
			return fmt.Errorf("failed to save dataset: %w", err)
		}
	}

	if sqlitePath != "" {
		db, err := storage.OpenSQLite(sqlitePath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		for _, t := range tables {
			if err := storage.SaveSQLite(cmd.Context(), db, t); err != nil {
				return err
			}
		}
	}
	return nil
}
