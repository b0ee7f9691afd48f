package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	ierrors "omiecli/internal/errors"
	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// RawSource enumerates candidate raw daily files. The second return value
// lists names that matched the configured prefix but failed to parse.
type RawSource interface {
	FindRawFiles() ([]files.RawFile, []string, error)
}

// DatasetStore loads and persists the two price datasets. Load returns a
// MISSING_DATASET error when the artifact does not exist; Persist must be
// all-or-nothing per artifact. The store receives the engine's output
// unmodified, preserving field and row order.
type DatasetStore interface {
	LoadHourly() (domain.PriceSeries, error)
	LoadQuarterHour() (domain.PriceSeries, error)
	PersistHourly(domain.PriceSeries) error
	PersistQuarterHour(domain.PriceSeries) error
}

// CoordinatorOptions configure one ingestion pipeline. Nothing here is a
// hidden global: cutover date, parser shape and parallelism all arrive from
// the caller's configuration.
type CoordinatorOptions struct {
	Parser  ParserOptions
	Cutover time.Time
	Workers int
}

// Coordinator orchestrates an ingestion run: discovery, version selection,
// parallel parse and classify, hourly/quarter-hour derivation, merge, and
// persistence of both datasets. It keeps no state across runs; each run is
// a pure function of the existing datasets, the raw files and the cutover
// date.
type Coordinator struct {
	source RawSource
	store  DatasetStore
	opts   CoordinatorOptions
	log    *slog.Logger
}

// NewCoordinator creates a Coordinator over the given collaborators.
func NewCoordinator(source RawSource, store DatasetStore, opts CoordinatorOptions) *Coordinator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Coordinator{
		source: source,
		store:  store,
		opts:   opts,
		log:    slog.Default().With(slog.String("component", "coordinator")),
	}
}

// parseResult is the outcome of one file's parse+classify, collected from
// the worker pool and re-assembled in deterministic file order.
type parseResult struct {
	classification Classification
	err            error
}

// Run executes one ingestion run and reports its summary. Files with format
// or naming problems are skipped with a warning; a persistence failure
// aborts with the prior artifacts untouched.
func (c *Coordinator) Run(ctx context.Context) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := c.log.With(slog.String("run_id", summary.RunID))

	discovered, badNames, err := c.source.FindRawFiles()
	if err != nil {
		return nil, fmt.Errorf("raw file discovery failed: %w", err)
	}
	summary.FilesDiscovered = len(discovered) + len(badNames)
	for _, name := range badNames {
		summary.Skip(name, "filename does not match expected pattern")
	}

	selected := files.SelectLatest(discovered)

	hourly, err := c.loadOrColdStart(c.store.LoadHourly, "hourly", log)
	if err != nil {
		return nil, err
	}
	quarter, err := c.loadOrColdStart(c.store.LoadQuarterHour, "quarter_hour", log)
	if err != nil {
		return nil, err
	}

	// Incremental short-circuit: a (date, zone) already present in the
	// hourly dataset is skipped before parsing. The merge itself is
	// idempotent regardless, this just avoids re-reading settled days.
	existingDays := hourly.DayKeys()
	candidates := make([]files.RawFile, 0, len(selected))
	for _, f := range selected {
		if existingDays[f.DayKey()] {
			log.Info("Skipping already ingested day",
				slog.String("file", f.Name),
				slog.String("zone", string(f.Zone)))
			summary.Skip(f.Name, "day already present in hourly dataset")
			continue
		}
		candidates = append(candidates, f)
	}

	results, err := c.parseAll(ctx, candidates)
	if err != nil {
		return nil, err
	}

	newHourly, newQuarter := c.assemble(candidates, results, summary, log)

	if len(newHourly) > 0 {
		merged := Merge(hourly, newHourly)
		if err := c.store.PersistHourly(merged); err != nil {
			return nil, fmt.Errorf("failed to persist hourly dataset: %w", err)
		}
		summary.HourlyRows = len(merged)
		log.Info("Hourly dataset updated",
			slog.Int("new_points", len(newHourly)),
			slog.Int("total_rows", len(merged)))
	} else {
		summary.HourlyRows = len(hourly)
		log.Info("No new hourly days to add")
	}

	if len(newQuarter) > 0 {
		merged := Merge(quarter, newQuarter)
		if err := c.store.PersistQuarterHour(merged); err != nil {
			return nil, fmt.Errorf("failed to persist quarter-hour dataset: %w", err)
		}
		summary.QuarterRows = len(merged)
		log.Info("Quarter-hour dataset updated",
			slog.Int("new_points", len(newQuarter)),
			slog.Int("total_rows", len(merged)))
	} else {
		summary.QuarterRows = len(quarter)
		log.Info("No new quarter-hour days to add")
	}

	summary.HourlyDaysAdded = len(newHourly.DayKeys())
	summary.QuarterDaysAdded = len(newQuarter.DayKeys())
	summary.FinishedAt = time.Now().UTC()

	log.Info("Ingestion run complete",
		slog.Int("files_discovered", summary.FilesDiscovered),
		slog.Int("files_accepted", summary.FilesAccepted),
		slog.Int("files_skipped", len(summary.FilesSkipped)),
		slog.Int("hourly_days_added", summary.HourlyDaysAdded),
		slog.Int("quarter_days_added", summary.QuarterDaysAdded))

	return summary, nil
}

// loadOrColdStart loads a dataset, treating an absent artifact as an empty
// series. Any other load failure is fatal before anything is written.
func (c *Coordinator) loadOrColdStart(load func() (domain.PriceSeries, error), name string, log *slog.Logger) (domain.PriceSeries, error) {
	series, err := load()
	if err != nil {
		if ierrors.CodeOf(err) == ierrors.CodeMissingDataset {
			log.Info("No existing dataset, starting cold", slog.String("dataset", name))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s dataset: %w", name, err)
	}
	return series, nil
}

// parseAll parses and classifies candidates concurrently. Results land in a
// slice parallel to candidates, so downstream assembly order never depends
// on worker completion order. Per-file failures are carried in the result,
// not returned: only context cancellation aborts the group.
func (c *Coordinator) parseAll(ctx context.Context, candidates []files.RawFile) ([]parseResult, error) {
	results := make([]parseResult, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)

	for i, f := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			day, err := ParseFile(f.Path, c.opts.Parser)
			if err != nil {
				results[i] = parseResult{err: err}
				return nil
			}
			cl, err := Classify(f, day)
			results[i] = parseResult{classification: cl, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// assemble walks parse results in deterministic file order and derives the
// new points for each dataset. A file contributes fully to every dataset it
// is eligible for, or to none at all.
func (c *Coordinator) assemble(candidates []files.RawFile, results []parseResult, summary *domain.RunSummary, log *slog.Logger) (newHourly, newQuarter domain.PriceSeries) {
	for i, f := range candidates {
		res := results[i]
		if res.err != nil {
			log.Warn("Skipping raw file",
				slog.String("file", f.Name),
				slog.String("reason", res.err.Error()))
			summary.Skip(f.Name, res.err.Error())
			continue
		}

		cl := res.classification
		preCutover := f.Date.Before(c.opts.Cutover)

		// Quarter-hour data dated before the cutover cannot exist in a
		// well-formed history; it is rejected outright rather than being
		// resampled into the pre-cutover hourly series.
		if cl.Granularity == domain.GranularityQuarterHour && preCutover {
			reason := fmt.Sprintf("quarter-hour granularity before cutover %s", c.opts.Cutover.Format("2006-01-02"))
			log.Warn("Skipping raw file",
				slog.String("file", f.Name),
				slog.String("reason", reason))
			summary.Skip(f.Name, reason)
			continue
		}

		hourlyDay := cl.Day
		if cl.Granularity == domain.GranularityQuarterHour {
			resampled, err := ResampleQuarterHourDay(cl.Day)
			if err != nil {
				log.Warn("Skipping day that does not resample cleanly",
					slog.String("file", f.Name),
					slog.String("reason", err.Error()))
				summary.Skip(f.Name, err.Error())
				continue
			}
			hourlyDay = resampled
		}

		newHourly = append(newHourly, BuildHourlyPoints(hourlyDay, f.Zone)...)
		if cl.Granularity == domain.GranularityQuarterHour && !preCutover {
			newQuarter = append(newQuarter, BuildQuarterHourPoints(cl.Day, f.Zone)...)
		}

		summary.FilesAccepted++
		log.Info("Adding new day",
			slog.String("file", f.Name),
			slog.String("zone", string(f.Zone)),
			slog.String("granularity", string(cl.Granularity)))
	}
	return newHourly, newQuarter
}
