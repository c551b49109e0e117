package commands

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leengari/tidytable/samples"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write an example survey project",
		Long: `Write an example project (two transect CSV files and a pipeline that
tags, unions, gathers and separates them) into dir, "survey" by default.

Run it with: tidy run survey/pipeline.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "survey"
			if len(args) == 1 {
				target = args[0]
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
			if err := seedProject(target, samples.Content, "survey"); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\nRun: tidy run %s\n",
				target, filepath.Join(target, "pipeline.yaml"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing directory")
	return cmd
}

// seedProject copies the embedded sample directory src into targetDir
func seedProject(targetDir string, seedFS fs.FS, src string) error {
	slog.Info("Seeding project...", "sample", src, "path", targetDir)

	return fs.WalkDir(seedFS, src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(dest, 0755)
		}

		content, err := fs.ReadFile(seedFS, path)
		if err != nil {
			return fmt.Errorf("failed to read sample file %s: %w", path, err)
		}
		return os.WriteFile(dest, content, 0644)
	})
}
