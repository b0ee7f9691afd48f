package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	ierrors "omiecli/internal/errors"
	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// RebuildHourly reconstructs the entire hourly dataset from the raw files
// alone, ignoring whatever is currently persisted. It runs the same parse,
// classify and resample path as an incremental run, merged into an empty
// series, so a rebuild can never drift numerically from incremental
// ingestion.
func (c *Coordinator) RebuildHourly(ctx context.Context) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := c.log.With(slog.String("run_id", summary.RunID), slog.String("mode", "rebuild"))

	discovered, badNames, err := c.source.FindRawFiles()
	if err != nil {
		return nil, fmt.Errorf("raw file discovery failed: %w", err)
	}
	summary.FilesDiscovered = len(discovered) + len(badNames)
	for _, name := range badNames {
		summary.Skip(name, "filename does not match expected pattern")
	}

	selected := files.SelectLatest(discovered)

	results, err := c.parseAll(ctx, selected)
	if err != nil {
		return nil, err
	}

	newHourly, _ := c.assemble(selected, results, summary, log)
	if len(newHourly) == 0 {
		return nil, fmt.Errorf("rebuild found no usable raw files")
	}

	rebuilt := Merge(nil, newHourly)
	if err := c.store.PersistHourly(rebuilt); err != nil {
		return nil, fmt.Errorf("failed to persist rebuilt hourly dataset: %w", err)
	}

	summary.HourlyRows = len(rebuilt)
	summary.HourlyDaysAdded = len(newHourly.DayKeys())
	summary.FinishedAt = time.Now().UTC()

	log.Info("Hourly rebuild complete",
		slog.Int("files_accepted", summary.FilesAccepted),
		slog.Int("rows", summary.HourlyRows))

	return summary, nil
}

// BackfillHourlyFromQuarter rewrites the post-cutover span of the hourly
// dataset from the persisted quarter-hour dataset, keeping every
// pre-cutover hourly record untouched. The quarter-hour artifact must
// already be materialized: its absence is fatal and nothing is written.
func (c *Coordinator) BackfillHourlyFromQuarter(ctx context.Context) error {
	log := c.log.With(slog.String("mode", "backfill"))

	quarter, err := c.store.LoadQuarterHour()
	if err != nil {
		if ierrors.CodeOf(err) == ierrors.CodeMissingDataset {
			return ierrors.MissingDataset("quarter-hour dataset must be materialized before a hourly backfill")
		}
		return fmt.Errorf("failed to load quarter-hour dataset: %w", err)
	}

	hourly, err := c.loadOrColdStart(c.store.LoadHourly, "hourly", log)
	if err != nil {
		return err
	}

	var preCutover domain.PriceSeries
	for _, p := range hourly {
		if p.DayKey().Date().Before(c.opts.Cutover) {
			preCutover = append(preCutover, p)
		}
	}

	rebuilt, err := c.hourlyFromQuarterSeries(quarter)
	if err != nil {
		return err
	}

	merged := Merge(preCutover, rebuilt)
	if err := c.store.PersistHourly(merged); err != nil {
		return fmt.Errorf("failed to persist backfilled hourly dataset: %w", err)
	}

	log.Info("Hourly backfill complete",
		slog.Int("pre_cutover_rows", len(preCutover)),
		slog.Int("rebuilt_rows", len(rebuilt)),
		slog.Int("total_rows", len(merged)))

	return nil
}

// hourlyFromQuarterSeries regroups a quarter-hour series into per-(day,
// zone) tables and resamples each through the one resampler code path.
func (c *Coordinator) hourlyFromQuarterSeries(quarter domain.PriceSeries) (domain.PriceSeries, error) {
	byDay := make(map[domain.DayKey]*domain.RawDay)
	order := make([]domain.DayKey, 0)
	for _, p := range quarter {
		key := p.DayKey()
		day, ok := byDay[key]
		if !ok {
			day = &domain.RawDay{}
			byDay[key] = day
			order = append(order, key)
		}
		day.Records = append(day.Records, domain.RawObservation{
			Year:      p.Year,
			Month:     p.Month,
			Day:       p.Day,
			Period:    p.Period,
			PriceMain: p.PriceMain,
			PriceAlt:  p.PriceAlt,
		})
	}

	var rebuilt domain.PriceSeries
	for _, key := range order {
		hourlyDay, err := ResampleQuarterHourDay(byDay[key])
		if err != nil {
			return nil, ierrors.Wrap(ierrors.CodeAggregation, err,
				fmt.Sprintf("quarter-hour day %04d-%02d-%02d %s does not resample cleanly", key.Year, key.Month, key.Day, key.Zone))
		}
		rebuilt = append(rebuilt, BuildHourlyPoints(hourlyDay, key.Zone)...)
	}

	return rebuilt, nil
}
