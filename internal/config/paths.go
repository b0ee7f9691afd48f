package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for every file path the application
// touches: the raw-file directory, the processed artifact triplets, and logs.
type Paths struct {
	BaseDir      string
	DataDir      string
	ProcessedDir string
	LogsDir      string

	// Hourly dataset artifacts (full history).
	HourlyCSV     string
	HourlyParquet string
	HourlyDuckDB  string

	// Quarter-hour dataset artifacts (post-cutover only).
	QuarterCSV     string
	QuarterParquet string
	QuarterDuckDB  string
}

// ResolvePaths builds the Paths for this configuration. Relative directories
// are anchored at BaseDir, which defaults to the current working directory.
func (c *Config) ResolvePaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		base = wd
	}

	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}

	processedDir := resolve(c.Paths.ProcessedDir)

	return &Paths{
		BaseDir:      base,
		DataDir:      resolve(c.Paths.DataDir),
		ProcessedDir: processedDir,
		LogsDir:      resolve(c.Paths.LogsDir),

		HourlyCSV:     filepath.Join(processedDir, "all_omie_prices.csv"),
		HourlyParquet: filepath.Join(processedDir, "all_omie_prices.parquet"),
		HourlyDuckDB:  filepath.Join(processedDir, "omie_prices.duckdb"),

		QuarterCSV:     filepath.Join(processedDir, "omie_15min_prices.csv"),
		QuarterParquet: filepath.Join(processedDir, "omie_15min_prices.parquet"),
		QuarterDuckDB:  filepath.Join(processedDir, "omie_15min_prices.duckdb"),
	}, nil
}

// EnsureDirectories creates every directory the application writes into.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ProcessedDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path of a log file inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
