// Package writer persists tables as JSON directories.
package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/storage/metadata"
)

// SaveTable writes meta.json and data.json for the table into dir,
// creating it if needed. Each file is replaced atomically.
func SaveTable(dir string, t *schema.Table) error {
	if t == nil || dir == "" {
		return fmt.Errorf("cannot save table: nil or missing path")
	}
	tableName := t.Name()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create table directory for %s: %w", tableName, err)
	}

	// 1. Prepare meta
	cols := t.Columns()
	meta := metadata.TableMeta{
		Name:     tableName,
		RowCount: int64(t.Len()),
		Columns:  make([]metadata.ColumnMeta, len(cols)),
	}
	for i, col := range cols {
		meta.Columns[i] = metadata.ColumnMeta{
			Name: col.Name,
			Type: string(col.Type),
		}
	}

	// 2. Marshal meta
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table meta for %s: %w", tableName, err)
	}

	// 3. Marshal data (rows)
	dataBytes, err := json.MarshalIndent(t.Rows(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows for %s: %w", tableName, err)
	}

	// 4. Write both files using temp + atomic rename
	files := []struct {
		path string
		data []byte
		name string
	}{
		{filepath.Join(dir, "meta.json"), metaBytes, "meta.json"},
		{filepath.Join(dir, "data.json"), dataBytes, "data.json"},
	}

	for _, f := range files {
		if err := writeAtomic(f.path, f.data); err != nil {
			return fmt.Errorf("failed to write %s for table %s: %w", f.name, tableName, err)
		}
	}

	slog.Info("Table saved successfully",
		slog.String("table", tableName),
		slog.String("path", dir),
		slog.Int("row_count", t.Len()),
	)
	return nil
}

// SaveDataset saves every table in its own subdirectory of dir plus a
// dataset meta.json listing them in order.
func SaveDataset(dir, name, runID string, tables []*schema.Table) error {
	if dir == "" {
		return fmt.Errorf("cannot save dataset: missing path")
	}

	// 1. Save all tables first
	tableNames := make([]string, 0, len(tables))
	seen := make(map[string]bool, len(tables))
	for _, table := range tables {
		if seen[table.Name()] {
			return fmt.Errorf("dataset %s: duplicate table name %s", name, table.Name())
		}
		seen[table.Name()] = true
		if err := SaveTable(filepath.Join(dir, table.Name()), table); err != nil {
			slog.Error("failed to save table during dataset save",
				slog.String("table", table.Name()),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to save table %s: %w", table.Name(), err)
		}
		tableNames = append(tableNames, table.Name())
	}

	// 2. Create dataset metadata
	meta := metadata.DatasetMeta{
		Name:    name,
		Version: 1,
		RunID:   runID,
		Tables:  tableNames,
	}

	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset meta: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, "meta.json"), metaBytes); err != nil {
		return fmt.Errorf("failed to write dataset meta: %w", err)
	}

	slog.Info("Dataset saved successfully",
		slog.String("name", name),
		slog.String("path", dir),
		slog.Int("table_count", len(tables)),
	)
	return nil
}

func writeAtomic(path string, content []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
