// Package storage reads raw tables from CSV files, JSON table directories
// and SQLite databases.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/storage/metadata"
)

// LoadTable reads a table directory holding meta.json and data.json.
// data.json is optional; without it the table is empty.
func LoadTable(path string) (*schema.Table, error) {
	metaPath := filepath.Join(path, "meta.json")
	dataPath := filepath.Join(path, "data.json")

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read table meta: %w", err)
	}

	var meta metadata.TableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse table meta %s: %w", metaPath, err)
	}

	columns := make([]schema.Column, 0, len(meta.Columns))
	for _, c := range meta.Columns {
		columns = append(columns, schema.Column{
			Name: c.Name,
			Type: schema.ColumnType(c.Type),
		})
	}

	rows := []data.Row{}
	if _, err := os.Stat(dataPath); err == nil {
		dataBytes, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read table data: %w", err)
		}

		if err := json.Unmarshal(dataBytes, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse table data %s: %w", dataPath, err)
		}
	}

	name := meta.Name
	if name == "" {
		name = filepath.Base(path)
	}
	b := schema.NewBuilder(name, columns)
	for _, row := range rows {
		b.Append(row)
	}
	table, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid table %s: %w", path, err)
	}

	slog.Info("table loaded",
		slog.String("table", table.Name()),
		slog.Int("rows", table.Len()),
	)
	return table, nil
}
