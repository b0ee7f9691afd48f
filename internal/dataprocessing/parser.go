package dataprocessing

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	ierrors "omiecli/internal/errors"
	"omiecli/pkg/contracts/domain"
)

// placeholderMarker flags missing or placeholder data in raw OMIE files.
// Lines containing it are dropped before field counting.
const placeholderMarker = "*"

// ParserOptions configure how raw daily files are split into observations.
type ParserOptions struct {
	// Delimiter separates fields within a line.
	Delimiter string
	// HeaderLines is the number of leading lines to discard.
	HeaderLines int
}

// ParseFile reads one raw daily OMIE file and extracts its observations.
func ParseFile(filePath string, opts ParserOptions) (*domain.RawDay, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, ierrors.Wrap(ierrors.CodeFormat, err, "failed to open raw file")
	}
	defer f.Close()

	return ParseReader(f, opts)
}

// ParseReader parses raw daily file content into a RawDay. Lines containing
// the placeholder marker are dropped; every remaining line must carry at
// least 7 fields, of which the trailing duplicate column is discarded. Any
// shape or cast violation is a FORMAT_ERROR for the whole file: the caller
// skips the file, it is not fatal to the run. Units, currency and sign are
// not interpreted here.
func ParseReader(r io.Reader, opts ParserOptions) (*domain.RawDay, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = ";"
	}

	scanner := bufio.NewScanner(r)
	day := &domain.RawDay{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if lineNo <= opts.HeaderLines {
			continue
		}
		if line == "" {
			continue
		}
		if strings.Contains(line, placeholderMarker) {
			slog.Debug("Dropping placeholder line", slog.Int("line", lineNo))
			continue
		}

		fields := strings.Split(line, delimiter)
		// Raw lines are delimiter-terminated, which yields one empty
		// trailing field after the split.
		if len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
			fields = fields[:len(fields)-1]
		}

		if len(fields) < 7 {
			return nil, ierrors.Format("line %d has %d fields, expected at least 7", lineNo, len(fields))
		}

		obs, err := parseObservation(fields, lineNo)
		if err != nil {
			return nil, err
		}
		day.Records = append(day.Records, obs)
	}

	if err := scanner.Err(); err != nil {
		return nil, ierrors.Wrap(ierrors.CodeFormat, err, "failed to read raw file")
	}

	return day, nil
}

// parseObservation casts one raw line's fields. The 7th field is the known
// duplicate of the second price and is dropped unchecked.
func parseObservation(fields []string, lineNo int) (domain.RawObservation, error) {
	intField := func(idx int, name string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(fields[idx]))
		if err != nil {
			return 0, ierrors.Format("line %d: invalid %s %q", lineNo, name, fields[idx])
		}
		return v, nil
	}
	floatField := func(idx int, name string) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
		if err != nil {
			return 0, ierrors.Format("line %d: invalid %s %q", lineNo, name, fields[idx])
		}
		return v, nil
	}

	var obs domain.RawObservation
	var err error

	if obs.Year, err = intField(0, "year"); err != nil {
		return obs, err
	}
	if obs.Month, err = intField(1, "month"); err != nil {
		return obs, err
	}
	if obs.Day, err = intField(2, "day"); err != nil {
		return obs, err
	}
	if obs.Period, err = intField(3, "period"); err != nil {
		return obs, err
	}
	if obs.PriceMain, err = floatField(4, "main price"); err != nil {
		return obs, err
	}
	if obs.PriceAlt, err = floatField(5, "alternate price"); err != nil {
		return obs, err
	}

	return obs, nil
}
