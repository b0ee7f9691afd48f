package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// parquetPricePoint mirrors the persisted 8-column layout for parquet.
type parquetPricePoint struct {
	Year      int32   `parquet:"name=year, type=INT32"`
	Month     int32   `parquet:"name=month, type=INT32"`
	Day       int32   `parquet:"name=day, type=INT32"`
	Period    int32   `parquet:"name=period, type=INT32"`
	PriceMain float64 `parquet:"name=price_main, type=DOUBLE"`
	PriceAlt  float64 `parquet:"name=price_alt, type=DOUBLE"`
	Timestamp int64   `parquet:"name=timestamp, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Zone      string  `parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ParquetWriter materializes a price series as the columnar artifact.
type ParquetWriter struct {
	manager *files.Manager
}

// NewParquetWriter creates a new parquet writer instance.
func NewParquetWriter(manager *files.Manager) *ParquetWriter {
	return &ParquetWriter{manager: manager}
}

// WriteSeries replaces the parquet file at path with the full series,
// staged and renamed like every other dataset artifact.
func (w *ParquetWriter) WriteSeries(path string, series domain.PriceSeries) error {
	slog.Info("Writing parquet dataset",
		slog.String("path", path),
		slog.Int("rows", len(series)))

	return w.manager.ReplaceFile(path, func(tmpPath string) error {
		fw, err := local.NewLocalFileWriter(tmpPath)
		if err != nil {
			return fmt.Errorf("failed to create parquet file: %w", err)
		}

		pw, err := writer.NewParquetWriter(fw, new(parquetPricePoint), 1)
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
		pw.CompressionType = parquet.CompressionCodec_SNAPPY

		for i, p := range series {
			rec := parquetPricePoint{
				Year:      int32(p.Year),
				Month:     int32(p.Month),
				Day:       int32(p.Day),
				Period:    int32(p.Period),
				PriceMain: p.PriceMain,
				PriceAlt:  p.PriceAlt,
				Timestamp: p.Timestamp.UTC().UnixMilli(),
				Zone:      string(p.Zone),
			}
			if err := pw.Write(rec); err != nil {
				pw.WriteStop()
				fw.Close()
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}

		if err := pw.WriteStop(); err != nil {
			fw.Close()
			return fmt.Errorf("failed to finalize parquet file: %w", err)
		}
		return fw.Close()
	})
}
