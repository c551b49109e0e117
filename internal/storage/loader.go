package storage

import (
	"context"
	"fmt"

	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/pipeline"
)

// Loader reads pipeline sources from disk
type Loader struct {
	CSV CSVOptions
}

// NewLoader returns a loader that reads CSV files with the given options
func NewLoader(opts CSVOptions) *Loader {
	return &Loader{CSV: opts}
}

// Load dispatches on the source format
func (l *Loader) Load(ctx context.Context, src pipeline.Source, path string) (*schema.Table, error) {
	switch src.Format {
	case pipeline.FormatCSV:
		return LoadCSV(path, l.CSV)
	case pipeline.FormatJSON:
		return LoadTable(path)
	case pipeline.FormatSQLite:
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		return LoadQuery(ctx, db, src.Name, src.Query)
	default:
		return nil, fmt.Errorf("unsupported source format %q", src.Format)
	}
}
