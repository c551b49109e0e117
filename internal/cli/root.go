// Package cli provides the command-line interface for tidy.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/tidytable/internal/cli/commands"
	"github.com/leengari/tidytable/internal/cli/config"
	"github.com/leengari/tidytable/internal/logging"
	"github.com/leengari/tidytable/internal/render"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// setupLogger is swapped in tests.
var setupLogger = logging.SetupLogger

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

// newRootCmd also returns a function that flushes the log sinks opened
// by the last invocation. It is safe to call more than once.
func newRootCmd() (*cobra.Command, func()) {
	var (
		cfgFile string
		closeFn = func() {}
	)
	closeLogs := func() {
		closeFn()
		closeFn = func() {}
	}

	rootCmd := &cobra.Command{
		Use:   "tidy",
		Short: "tidy - reshape raw survey tables into tidy data",
		Long: `tidy turns spreadsheet-shaped survey data into tidy tables.

A pipeline definition names raw sources (CSV files, JSON tables, SQLite
queries), the reshaping steps to apply (gather, spread, separate, unite,
select, distinct, tag) and the normalized tables to write out.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			if cfg.Verbose && level > slog.LevelDebug {
				level = slog.LevelDebug
			}
			logger, cleanup := setupLogger(logging.Options{
				Level:     level,
				SeqURL:    cfg.SeqURL,
				AddSource: cfg.Verbose,
				Output:    cmd.ErrOrStderr(),
			})
			closeFn = cleanup
			slog.SetDefault(logger)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					logger.Debug("using config file", "path", configFile)
				}
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			closeLogs()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tidy.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|markdown|csv|json)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("seq-url", "", "Seq server URL for log shipping (empty disables)")
	rootCmd.PersistentFlags().String("delimiter", "", "CSV field delimiter (default: ',' or tab for .tsv)")
	rootCmd.PersistentFlags().StringSlice("missing", nil, "Cell texts read as missing values")
	rootCmd.PersistentFlags().Bool("keep-text", false, "Read every CSV column as text")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return render.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewInitCommand())

	return rootCmd, closeLogs
}

// Execute runs the root command.
func Execute() error {
	return runRoot(os.Args[1:], os.Stdout, os.Stderr)
}

// runRoot executes the command tree and flushes logs even when the
// command fails; cobra skips PersistentPostRun after a RunE error.
func runRoot(args []string, stdout, stderr io.Writer) error {
	rootCmd, closeLogs := newRootCmd()
	defer closeLogs()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
