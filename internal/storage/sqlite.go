package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) a SQLite database file
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database %s: %w", path, err)
	}
	return db, nil
}

// LoadQuery runs query and returns its result set as a table.
// NULL becomes a missing cell, integers and reals become numbers, and
// text and blobs become text.
func LoadQuery(ctx context.Context, db *sql.DB, name, query string) (*schema.Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var records [][]data.Value
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(records), err)
		}

		rec := make([]data.Value, len(cols))
		for i, raw := range values {
			v, err := data.FromInterface(raw)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", cols[i], err)
			}
			rec[i] = v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table, err := schema.FromRecords(name, cols, records)
	if err != nil {
		return nil, err
	}
	slog.Info("table loaded",
		slog.String("table", table.Name()),
		slog.String("source", "sqlite"),
		slog.Int("rows", table.Len()),
	)
	return table, nil
}

// SaveSQLite replaces the SQLite table named after t with its contents,
// inside a single transaction.
func SaveSQLite(ctx context.Context, db *sql.DB, t *schema.Table) error {
	cols := t.Columns()
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		sqlType := "TEXT"
		if col.Type == schema.ColumnTypeNumber {
			sqlType = "REAL"
		}
		names[i] = quoteIdent(col.Name)
		defs[i] = names[i] + " " + sqlType
		marks[i] = "?"
	}
	table := quoteIdent(t.Name())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", t.Name(), err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", t.Name(), err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", t.Name(), err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range t.Records() {
		args := make([]any, len(rec))
		for i, v := range rec {
			args[i] = v.Interface()
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", t.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", t.Name(), err)
	}
	slog.Info("Table saved successfully",
		slog.String("table", t.Name()),
		slog.String("sink", "sqlite"),
		slog.Int("row_count", t.Len()),
	)
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
