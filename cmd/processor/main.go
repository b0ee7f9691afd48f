// Command processor runs one incremental ingestion of raw OMIE daily files
// into the hourly and quarter-hour price datasets.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"omiecli/internal/config"
	"omiecli/internal/dataprocessing"
	"omiecli/internal/exporter"
	"omiecli/internal/files"
	"omiecli/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to the YAML configuration file")
	dataDir := flag.String("data", "", "raw file directory (overrides configuration)")
	processedDir := flag.String("processed", "", "processed artifact directory (overrides configuration)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *processedDir != "" {
		cfg.Paths.ProcessedDir = *processedDir
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if cfg.Logging.Output != "console" {
		cfg.Logging.FilePath = paths.GetLogPath("processor.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	cutover, err := cfg.Cutover()
	if err != nil {
		logger.Error("Invalid cutover date", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting OMIE price ingestion",
		slog.String("data_dir", paths.DataDir),
		slog.String("processed_dir", paths.ProcessedDir),
		slog.String("cutover", cfg.Ingest.CutoverDate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	namer := files.NewNamer(cfg.Ingest.FilePrefix, cfg.Zones())
	discovery := files.NewDiscovery(paths.DataDir, namer)
	store := exporter.NewStore(paths)

	coord := dataprocessing.NewCoordinator(discovery, store, dataprocessing.CoordinatorOptions{
		Parser: dataprocessing.ParserOptions{
			Delimiter:   cfg.Ingest.Delimiter,
			HeaderLines: cfg.Ingest.HeaderLines,
		},
		Cutover: cutover,
		Workers: cfg.Ingest.Workers,
	})

	summary, err := coord.Run(ctx)
	if err != nil {
		logger.Error("Ingestion run failed", "error", err)
		os.Exit(1)
	}

	for _, skipped := range summary.FilesSkipped {
		logger.Warn("File skipped",
			slog.String("file", skipped.Name),
			slog.String("reason", skipped.Reason))
	}
	logger.Info("Run summary",
		slog.String("run_id", summary.RunID),
		slog.Int("files_discovered", summary.FilesDiscovered),
		slog.Int("files_accepted", summary.FilesAccepted),
		slog.Int("files_skipped", len(summary.FilesSkipped)),
		slog.Int("hourly_days_added", summary.HourlyDaysAdded),
		slog.Int("quarter_days_added", summary.QuarterDaysAdded),
		slog.Int("hourly_rows", summary.HourlyRows),
		slog.Int("quarter_rows", summary.QuarterRows))
}
