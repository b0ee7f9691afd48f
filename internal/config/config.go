package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"omiecli/pkg/contracts/domain"
)

// Config is the complete application configuration. Values are loaded from
// an optional YAML file and overridden by OMIE_* environment variables.
type Config struct {
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// IngestConfig drives the reconciliation engine. None of these are hidden
// globals: the coordinator receives them at construction.
type IngestConfig struct {
	// FilePrefix is the literal prefix of raw daily files
	// (<prefix>_<YYYYMMDD>.<revision>).
	FilePrefix string `yaml:"file_prefix" envconfig:"FILE_PREFIX"`

	// Delimiter separates fields within a raw file line.
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER"`

	// HeaderLines is the number of leading lines discarded per raw file.
	HeaderLines int `yaml:"header_lines" envconfig:"HEADER_LINES"`

	// CutoverDate is the calendar date the market switched from hourly to
	// quarter-hour reporting. Quarter-hour points exist only on or after it.
	CutoverDate string `yaml:"cutover_date" envconfig:"CUTOVER_DATE"`

	// ZoneMap maps a filename revision suffix to its market zone.
	ZoneMap map[int]string `yaml:"zone_map" envconfig:"ZONE_MAP"`

	// Workers bounds the parallel per-file parse fan-out.
	Workers int `yaml:"workers" envconfig:"WORKERS"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the file system locations the engine works against.
type PathsConfig struct {
	// BaseDir anchors all relative paths. Empty means the current directory.
	BaseDir      string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the built-in configuration. OMIE publishes daily
// marginalpdbc files with one header line and semicolon-separated fields;
// the reporting cutover to quarter-hour periods is 2025-10-01.
func Default() Config {
	return Config{
		Ingest: IngestConfig{
			FilePrefix:  "marginalpdbc",
			Delimiter:   ";",
			HeaderLines: 1,
			CutoverDate: "2025-10-01",
			ZoneMap:     map[int]string{1: "Spain", 2: "Portugal"},
			Workers:     4,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/omie.log",
		},
		Paths: PathsConfig{
			DataDir:      "data",
			ProcessedDir: "processed",
			LogsDir:      "logs",
		},
	}
}

// Load loads configuration with defaults < config file < environment
// precedence. The YAML file only touches keys it names; envconfig only
// touches variables that are set, so each layer overrides selectively.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("OMIE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays a YAML file onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks the configuration for values the engine cannot run with.
func (c *Config) validate() error {
	if c.Ingest.FilePrefix == "" {
		return fmt.Errorf("ingest.file_prefix must not be empty")
	}
	if len(c.Ingest.Delimiter) != 1 {
		return fmt.Errorf("ingest.delimiter must be a single character, got %q", c.Ingest.Delimiter)
	}
	if c.Ingest.HeaderLines < 0 {
		return fmt.Errorf("ingest.header_lines must not be negative")
	}
	if _, err := c.Cutover(); err != nil {
		return fmt.Errorf("ingest.cutover_date: %w", err)
	}
	if len(c.Ingest.ZoneMap) == 0 {
		return fmt.Errorf("ingest.zone_map must map at least one revision to a zone")
	}
	if c.Ingest.Workers < 1 {
		return fmt.Errorf("ingest.workers must be at least 1")
	}
	return nil
}

// Cutover parses the configured cutover date as a midnight-UTC instant.
func (c *Config) Cutover() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Ingest.CutoverDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutover date %q: %w", c.Ingest.CutoverDate, err)
	}
	return t.UTC(), nil
}

// Zones converts the configured revision-to-zone map to domain zones.
func (c *Config) Zones() map[int]domain.Zone {
	zones := make(map[int]domain.Zone, len(c.Ingest.ZoneMap))
	for rev, name := range c.Ingest.ZoneMap {
		zones[rev] = domain.Zone(name)
	}
	return zones
}
