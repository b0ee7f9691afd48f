package exporter

import (
	"database/sql"
	"fmt"
	"log/slog"

	duckdb "github.com/marcboeker/go-duckdb/v2"

	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// DuckDBWriter materializes a price series as an embedded queryable table.
type DuckDBWriter struct {
	manager *files.Manager
}

// NewDuckDBWriter creates a new DuckDB writer instance.
func NewDuckDBWriter(manager *files.Manager) *DuckDBWriter {
	return &DuckDBWriter{manager: manager}
}

// WriteSeries replaces the DuckDB file at path with a single table holding
// the full series. The database is built at a staged path and renamed into
// place, so the prior artifact survives any failure.
func (w *DuckDBWriter) WriteSeries(path, table string, series domain.PriceSeries) error {
	slog.Info("Writing DuckDB dataset",
		slog.String("path", path),
		slog.String("table", table),
		slog.Int("rows", len(series)))

	return w.manager.ReplaceFile(path, func(tmpPath string) error {
		connector, err := duckdb.NewConnector(tmpPath, nil)
		if err != nil {
			return fmt.Errorf("failed to open duckdb database: %w", err)
		}
		db := sql.OpenDB(connector)
		defer db.Close()

		ddl := fmt.Sprintf(`CREATE TABLE %s (
			year INTEGER,
			month INTEGER,
			day INTEGER,
			period INTEGER,
			price_main DOUBLE,
			price_alt DOUBLE,
			timestamp TIMESTAMP,
			zone VARCHAR
		)`, table)
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		stmt, err := tx.Prepare(fmt.Sprintf(
			"INSERT INTO %s VALUES (?, ?, ?, ?, ?, ?, ?, ?)", table))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to prepare insert: %w", err)
		}

		for i, p := range series {
			_, err := stmt.Exec(
				p.Year, p.Month, p.Day, p.Period,
				p.PriceMain, p.PriceAlt,
				p.Timestamp.UTC(), string(p.Zone),
			)
			if err != nil {
				stmt.Close()
				tx.Rollback()
				return fmt.Errorf("failed to insert record %d: %w", i, err)
			}
		}

		if err := stmt.Close(); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to close insert statement: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}
		return db.Close()
	})
}
