package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/storage/metadata"
)

// Dataset is a named, ordered set of tables stored together
type Dataset struct {
	Name   string
	RunID  string
	Tables []*schema.Table
}

// Table returns the dataset table with the given name
func (d *Dataset) Table(name string) (*schema.Table, bool) {
	for _, t := range d.Tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// LoadDataset loads every table listed in the dataset's meta.json, in order
func LoadDataset(path string) (*Dataset, error) {
	metaPath := filepath.Join(path, "meta.json")

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset meta: %w", err)
	}

	var meta metadata.DatasetMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse dataset meta: %w", err)
	}

	ds := &Dataset{Name: meta.Name, RunID: meta.RunID}
	for _, name := range meta.Tables {
		table, err := LoadTable(filepath.Join(path, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", name, err)
		}
		ds.Tables = append(ds.Tables, table)
	}

	slog.Info("dataset loaded",
		slog.String("name", ds.Name),
		slog.String("path", path),
		slog.Int("table_count", len(ds.Tables)),
	)
	return ds, nil
}
