// Command rebuild reconstructs price dataset artifacts outside the normal
// incremental flow. Mode "full" rebuilds the hourly dataset from the raw
// files alone; mode "backfill" rewrites the post-cutover hourly span from
// the persisted quarter-hour dataset, which must already exist.
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
	mode := flag.String("mode", "full", "rebuild mode: full (from raw files) or backfill (hourly from quarter-hour artifact)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
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
		cfg.Logging.FilePath = paths.GetLogPath("rebuild.log")
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

	switch *mode {
	case "full":
		summary, err := coord.RebuildHourly(ctx)
		if err != nil {
			logger.Error("Hourly rebuild failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Rebuild summary",
			slog.String("run_id", summary.RunID),
			slog.Int("files_accepted", summary.FilesAccepted),
			slog.Int("files_skipped", len(summary.FilesSkipped)),
			slog.Int("hourly_rows", summary.HourlyRows))
	case "backfill":
		if err := coord.BackfillHourlyFromQuarter(ctx); err != nil {
			logger.Error("Hourly backfill failed", "error", err)
			os.Exit(1)
		}
	default:
		logger.Error("Unknown mode", slog.String("mode", *mode))
		os.Exit(1)
	}
}
