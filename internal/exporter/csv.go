package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// datasetHeaders is the canonical persisted column order. Loaders bind by
// position, not by these names, so a foreign header row is tolerated.
var datasetHeaders = []string{
	"year", "month", "day", "period", "price_main", "price_alt", "timestamp", "zone",
}

// CSVWriter materializes a price series as the row-oriented artifact.
type CSVWriter struct {
	manager *files.Manager
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(manager *files.Manager) *CSVWriter {
	return &CSVWriter{manager: manager}
}

// WriteSeries replaces the CSV file at path with the full series. The write
// is staged and renamed, so a failure leaves any prior file untouched.
func (w *CSVWriter) WriteSeries(path string, series domain.PriceSeries) error {
	slog.Info("Writing CSV dataset",
		slog.String("path", path),
		slog.Int("rows", len(series)))

	return w.manager.ReplaceFile(path, func(tmpPath string) error {
		f, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer f.Close()

		cw := csv.NewWriter(f)
		if err := cw.Write(datasetHeaders); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
		for i, p := range series {
			if err := cw.Write(pointToRow(p)); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		return f.Close()
	})
}

// pointToRow renders one PricePoint in the persisted column order.
func pointToRow(p domain.PricePoint) []string {
	return []string{
		formatInt(p.Year),
		formatInt(p.Month),
		formatInt(p.Day),
		formatInt(p.Period),
		formatPrice(p.PriceMain),
		formatPrice(p.PriceAlt),
		formatTimestamp(p.Timestamp),
		string(p.Zone),
	}
}
