package exporter

import (
	"omiecli/internal/config"
	ierrors "omiecli/internal/errors"
	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// Table names inside the DuckDB artifacts.
const (
	hourlyTable  = "prices"
	quarterTable = "prices_15min"
)

// Store persists each dataset as the artifact triplet the downstream
// consumers expect: row-oriented CSV, columnar parquet, and an embedded
// queryable DuckDB table. The CSV is the representation datasets are loaded
// back from on incremental runs. The store hands the engine's output to
// each format unmodified, preserving field and row order.
type Store struct {
	paths   *config.Paths
	csv     *CSVWriter
	parquet *ParquetWriter
	duckdb  *DuckDBWriter
}

// NewStore creates a Store over the configured artifact paths.
func NewStore(paths *config.Paths) *Store {
	manager := files.NewManager()
	return &Store{
		paths:   paths,
		csv:     NewCSVWriter(manager),
		parquet: NewParquetWriter(manager),
		duckdb:  NewDuckDBWriter(manager),
	}
}

// LoadHourly reads the persisted hourly dataset.
func (s *Store) LoadHourly() (domain.PriceSeries, error) {
	return LoadSeries(s.paths.HourlyCSV, LoadOptions{HasHeader: true})
}

// LoadQuarterHour reads the persisted quarter-hour dataset.
func (s *Store) LoadQuarterHour() (domain.PriceSeries, error) {
	return LoadSeries(s.paths.QuarterCSV, LoadOptions{HasHeader: true})
}

// PersistHourly writes the hourly dataset triplet.
func (s *Store) PersistHourly(series domain.PriceSeries) error {
	return s.persist(series, s.paths.HourlyCSV, s.paths.HourlyParquet, s.paths.HourlyDuckDB, hourlyTable)
}

// PersistQuarterHour writes the quarter-hour dataset triplet.
func (s *Store) PersistQuarterHour(series domain.PriceSeries) error {
	return s.persist(series, s.paths.QuarterCSV, s.paths.QuarterParquet, s.paths.QuarterDuckDB, quarterTable)
}

func (s *Store) persist(series domain.PriceSeries, csvPath, parquetPath, duckdbPath, table string) error {
	if err := s.csv.WriteSeries(csvPath, series); err != nil {
		return ierrors.Persistence(err, "failed to write %s", csvPath)
	}
	if err := s.parquet.WriteSeries(parquetPath, series); err != nil {
		return ierrors.Persistence(err, "failed to write %s", parquetPath)
	}
	if err := s.duckdb.WriteSeries(duckdbPath, table, series); err != nil {
		return ierrors.Persistence(err, "failed to write %s", duckdbPath)
	}
	return nil
}
