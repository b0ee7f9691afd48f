package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	ierrors "omiecli/internal/errors"
	"omiecli/pkg/contracts/domain"
)

// LoadOptions configure how a persisted dataset is read back.
type LoadOptions struct {
	// HasHeader declares whether the first row is a header. The loader
	// never sniffs data values to guess; callers that cannot know pass
	// the flag from their own configuration.
	HasHeader bool
}

// LoadSeries reads a persisted dataset from a CSV file. Columns bind by
// POSITION to (year, month, day, period, price_main, price_alt, timestamp,
// zone) regardless of what a header row calls them; surplus columns are
// ignored. An absent file is a MISSING_DATASET error so callers can decide
// between cold start and abort.
func LoadSeries(path string, opts LoadOptions) (domain.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ierrors.MissingDataset("dataset file %s does not exist", path)
		}
		return nil, ierrors.Wrap(ierrors.CodeFormat, err, "failed to open dataset")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var series domain.PriceSeries
	rowNo := 0

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ierrors.Wrap(ierrors.CodeFormat, err, "failed to read dataset row")
		}
		rowNo++
		if rowNo == 1 && opts.HasHeader {
			continue
		}

		point, err := rowToPoint(row, rowNo)
		if err != nil {
			return nil, err
		}
		series = append(series, point)
	}

	slog.Debug("Loaded dataset",
		slog.String("path", path),
		slog.Int("rows", len(series)))

	return series, nil
}

// rowToPoint binds the first 8 columns of a persisted row.
func rowToPoint(row []string, rowNo int) (domain.PricePoint, error) {
	var p domain.PricePoint
	if len(row) < 8 {
		return p, ierrors.Format("dataset row %d has %d columns, expected at least 8", rowNo, len(row))
	}

	intCol := func(idx int, name string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(row[idx]))
		if err != nil {
			return 0, ierrors.Format("dataset row %d: invalid %s %q", rowNo, name, row[idx])
		}
		return v, nil
	}
	floatCol := func(idx int, name string) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return 0, ierrors.Format("dataset row %d: invalid %s %q", rowNo, name, row[idx])
		}
		return v, nil
	}

	var err error
	if p.Year, err = intCol(0, "year"); err != nil {
		return p, err
	}
	if p.Month, err = intCol(1, "month"); err != nil {
		return p, err
	}
	if p.Day, err = intCol(2, "day"); err != nil {
		return p, err
	}
	if p.Period, err = intCol(3, "period"); err != nil {
		return p, err
	}
	if p.PriceMain, err = floatCol(4, "main price"); err != nil {
		return p, err
	}
	if p.PriceAlt, err = floatCol(5, "alternate price"); err != nil {
		return p, err
	}

	ts, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(row[6]), time.UTC)
	if err != nil {
		return p, ierrors.Format("dataset row %d: invalid timestamp %q", rowNo, row[6])
	}
	p.Timestamp = ts

	zone := strings.TrimSpace(row[7])
	if zone == "" {
		return p, ierrors.Format("dataset row %d: empty zone", rowNo)
	}
	p.Zone = domain.Zone(zone)

	return p, nil
}
