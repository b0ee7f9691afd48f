package dataprocessing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "omiecli/internal/errors"
	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

var testCutover = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

// memStore is an in-memory DatasetStore for pipeline tests.
type memStore struct {
	hourly        domain.PriceSeries
	quarter       domain.PriceSeries
	hourlyExists  bool
	quarterExists bool

	hourlyPersists  int
	quarterPersists int
}

func (s *memStore) LoadHourly() (domain.PriceSeries, error) {
	if !s.hourlyExists {
		return nil, ierrors.MissingDataset("hourly dataset not found")
	}
	return s.hourly, nil
}

func (s *memStore) LoadQuarterHour() (domain.PriceSeries, error) {
	if !s.quarterExists {
		return nil, ierrors.MissingDataset("quarter-hour dataset not found")
	}
	return s.quarter, nil
}

func (s *memStore) PersistHourly(series domain.PriceSeries) error {
	s.hourly = series
	s.hourlyExists = true
	s.hourlyPersists++
	return nil
}

func (s *memStore) PersistQuarterHour(series domain.PriceSeries) error {
	s.quarter = series
	s.quarterExists = true
	s.quarterPersists++
	return nil
}

// writeRawFile writes a synthetic raw daily file. Each period p carries the
// price prices[(p-1)%len(prices)].
func writeRawFile(t *testing.T, dir, name string, date time.Time, periods int, prices []float64) {
	t.Helper()

	var b strings.Builder
	b.WriteString("MARGINALPDBC;\n")
	for p := 1; p <= periods; p++ {
		price := prices[(p-1)%len(prices)]
		fmt.Fprintf(&b, "%d;%d;%d;%d;%.2f;%.2f;%.2f;\n",
			date.Year(), int(date.Month()), date.Day(), p, price, price, price)
	}
	b.WriteString("*\n")

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644))
}

func newTestCoordinator(t *testing.T, dir string, store DatasetStore) *Coordinator {
	t.Helper()

	namer := files.NewNamer("marginalpdbc", map[int]domain.Zone{
		1: domain.ZoneSpain,
		2: domain.ZonePortugal,
	})
	return NewCoordinator(files.NewDiscovery(dir, namer), store, CoordinatorOptions{
		Parser:  ParserOptions{Delimiter: ";", HeaderLines: 1},
		Cutover: testCutover,
		Workers: 2,
	})
}

func TestCoordinatorRun(t *testing.T) {
	t.Run("hourly and quarter hour files route to both datasets", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 24, []float64{65.4})
		writeRawFile(t, dir, "marginalpdbc_20251001.1", testCutover, 96, []float64{10, 20, 30, 40.1})

		store := &memStore{}
		coord := newTestCoordinator(t, dir, store)

		summary, err := coord.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, summary.FilesDiscovered)
		assert.Equal(t, 2, summary.FilesAccepted)
		assert.Empty(t, summary.FilesSkipped)

		// 24 native hourly rows plus 24 resampled rows.
		require.Len(t, store.hourly, 48)
		require.Len(t, store.quarter, 96)

		for _, p := range store.hourly {
			if p.Day == 1 {
				assert.Equal(t, 25.03, p.PriceMain)
			} else {
				assert.Equal(t, 65.4, p.PriceMain)
			}
		}
		for _, p := range store.quarter {
			assert.Equal(t, 1, p.Day)
			assert.Equal(t, 10, p.Month)
		}
	})

	t.Run("running twice leaves datasets unchanged", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 24, []float64{65.4})
		writeRawFile(t, dir, "marginalpdbc_20251001.1", testCutover, 96, []float64{10, 20, 30, 40.1})

		store := &memStore{}
		coord := newTestCoordinator(t, dir, store)

		_, err := coord.Run(context.Background())
		require.NoError(t, err)
		firstHourly := store.hourly
		firstQuarter := store.quarter

		summary, err := coord.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, summary.FilesAccepted)
		assert.Len(t, summary.FilesSkipped, 2)
		assert.Equal(t, firstHourly, store.hourly)
		assert.Equal(t, firstQuarter, store.quarter)
		assert.Equal(t, 1, store.hourlyPersists)
		assert.Equal(t, 1, store.quarterPersists)
	})

	t.Run("highest revision per day and zone wins", func(t *testing.T) {
		dir := t.TempDir()
		date := testCutover.AddDate(0, 0, -1)
		writeRawFile(t, dir, "marginalpdbc_20250930.1", date, 24, []float64{65.4})
		writeRawFile(t, dir, "marginalpdbc_20250930.2", date, 24, []float64{42.5})

		store := &memStore{}
		summary, err := newTestCoordinator(t, dir, store).Run(context.Background())
		require.NoError(t, err)

		// Revisions encode zones, so both files survive selection.
		assert.Equal(t, 2, summary.FilesAccepted)
		require.Len(t, store.hourly, 48)

		byZone := map[domain.Zone]float64{}
		for _, p := range store.hourly {
			byZone[p.Zone] = p.PriceMain
		}
		assert.Equal(t, 65.4, byZone[domain.ZoneSpain])
		assert.Equal(t, 42.5, byZone[domain.ZonePortugal])
	})

	t.Run("quarter hour file before cutover rejected from both datasets", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 96, []float64{10, 20, 30, 40.1})

		store := &memStore{}
		summary, err := newTestCoordinator(t, dir, store).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, summary.FilesAccepted)
		require.Len(t, summary.FilesSkipped, 1)
		assert.Contains(t, summary.FilesSkipped[0].Reason, "cutover")
		assert.Empty(t, store.hourly)
		assert.Empty(t, store.quarter)
	})

	t.Run("hourly file after cutover contributes to hourly only", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20251002.1", testCutover.AddDate(0, 0, 1), 24, []float64{65.4})

		store := &memStore{}
		_, err := newTestCoordinator(t, dir, store).Run(context.Background())
		require.NoError(t, err)

		assert.Len(t, store.hourly, 24)
		assert.Empty(t, store.quarter)
	})

	t.Run("malformed file skipped without aborting run", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 24, []float64{65.4})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "marginalpdbc_20250929.1"),
			[]byte("MARGINALPDBC;\n2025;9;29;1;bad\n"), 0o644))

		store := &memStore{}
		summary, err := newTestCoordinator(t, dir, store).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.FilesAccepted)
		require.Len(t, summary.FilesSkipped, 1)
		assert.Equal(t, "marginalpdbc_20250929.1", summary.FilesSkipped[0].Name)
		assert.Len(t, store.hourly, 24)
	})

	t.Run("unparsable filename recorded and ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 24, []float64{65.4})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "marginalpdbc_broken"), []byte("junk"), 0o644))

		store := &memStore{}
		summary, err := newTestCoordinator(t, dir, store).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, summary.FilesDiscovered)
		assert.Equal(t, 1, summary.FilesAccepted)
		require.Len(t, summary.FilesSkipped, 1)
		assert.Equal(t, "marginalpdbc_broken", summary.FilesSkipped[0].Name)
	})

	t.Run("cancelled context aborts before persisting", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 24, []float64{65.4})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		store := &memStore{}
		_, err := newTestCoordinator(t, dir, store).Run(ctx)
		require.Error(t, err)
		assert.Equal(t, 0, store.hourlyPersists)
	})
}

func TestRebuildHourly(t *testing.T) {
	dir := t.TempDir()
	writeRawFile(t, dir, "marginalpdbc_20250930.1", testCutover.AddDate(0, 0, -1), 24, []float64{65.4})
	writeRawFile(t, dir, "marginalpdbc_20251001.1", testCutover, 96, []float64{10, 20, 30, 40.1})

	// Pre-seed a stale hourly dataset with a wrong price; the rebuild must
	// replace it entirely from the raw files.
	stale := point(testCutover.AddDate(0, 0, -1), domain.ZoneSpain, 999.0)
	store := &memStore{
		hourly:       domain.PriceSeries{stale},
		hourlyExists: true,
	}

	summary, err := newTestCoordinator(t, dir, store).RebuildHourly(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesAccepted)
	require.Len(t, store.hourly, 48)
	for _, p := range store.hourly {
		assert.NotEqual(t, 999.0, p.PriceMain)
	}
}

func TestRebuildHourlyNoUsableFiles(t *testing.T) {
	store := &memStore{}
	_, err := newTestCoordinator(t, t.TempDir(), store).RebuildHourly(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, store.hourlyPersists)
}

func TestBackfillHourlyFromQuarter(t *testing.T) {
	t.Run("post cutover hours rebuilt and pre cutover rows kept", func(t *testing.T) {
		preCutoverDay := testCutover.AddDate(0, 0, -1)
		var quarter domain.PriceSeries
		prices := []float64{10, 20, 30, 40.1}
		for p := 1; p <= 96; p++ {
			ts := testCutover.Add(time.Duration(p-1) * 15 * time.Minute)
			quarter = append(quarter, domain.PricePoint{
				Year:      ts.Year(),
				Month:     int(ts.Month()),
				Day:       testCutover.Day(),
				Period:    p,
				PriceMain: prices[(p-1)%4],
				PriceAlt:  prices[(p-1)%4],
				Timestamp: ts,
				Zone:      domain.ZoneSpain,
			})
		}

		store := &memStore{
			hourly: domain.PriceSeries{
				point(preCutoverDay, domain.ZoneSpain, 65.4),
				point(testCutover, domain.ZoneSpain, 999.0),
			},
			hourlyExists:  true,
			quarter:       quarter,
			quarterExists: true,
		}

		err := newTestCoordinator(t, t.TempDir(), store).BackfillHourlyFromQuarter(context.Background())
		require.NoError(t, err)

		require.Len(t, store.hourly, 25)
		assert.Equal(t, 65.4, store.hourly[0].PriceMain)
		for _, p := range store.hourly[1:] {
			assert.Equal(t, 25.03, p.PriceMain)
		}
	})

	t.Run("missing quarter hour dataset is fatal and writes nothing", func(t *testing.T) {
		store := &memStore{
			hourly:       domain.PriceSeries{point(testCutover, domain.ZoneSpain, 50.0)},
			hourlyExists: true,
		}

		err := newTestCoordinator(t, t.TempDir(), store).BackfillHourlyFromQuarter(context.Background())
		require.Error(t, err)
		assert.Equal(t, ierrors.CodeMissingDataset, ierrors.CodeOf(err))
		assert.Equal(t, 0, store.hourlyPersists)
	})
}
