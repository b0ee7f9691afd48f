package dataprocessing

import (
	ierrors "omiecli/internal/errors"
	"omiecli/internal/files"
	"omiecli/pkg/contracts/domain"
)

// Classification is the identity of one parsed raw file: its calendar date
// and zone (from the filename) and its native granularity (from the data).
type Classification struct {
	File        files.RawFile
	Day         *domain.RawDay
	Granularity domain.Granularity
}

// Classify validates a parsed day against its filename and decides its
// granularity. Granularity follows the maximum observed period, never the
// file's date: a historical file that is already hourly is never resampled
// even if dated after the reporting cutover.
func Classify(file files.RawFile, day *domain.RawDay) (Classification, error) {
	if len(day.Records) == 0 {
		return Classification{}, ierrors.Format("file %s contains no observations", file.Name)
	}

	wantYear, wantMonth, wantDay := file.Date.Year(), int(file.Date.Month()), file.Date.Day()
	seen := make(map[int]bool, len(day.Records))
	for _, r := range day.Records {
		if r.Year != wantYear || r.Month != wantMonth || r.Day != wantDay {
			return Classification{}, ierrors.Format(
				"file %s contains observation dated %04d-%02d-%02d, expected %04d-%02d-%02d",
				file.Name, r.Year, r.Month, r.Day, wantYear, wantMonth, wantDay)
		}
		if seen[r.Period] {
			return Classification{}, ierrors.Format("file %s contains duplicate period %d", file.Name, r.Period)
		}
		seen[r.Period] = true
	}

	g := day.Granularity()
	if max := day.MaxPeriod(); max > g.PeriodsPerDay() {
		return Classification{}, ierrors.Format("file %s has period %d beyond %d", file.Name, max, g.PeriodsPerDay())
	}

	return Classification{File: file, Day: day, Granularity: g}, nil
}
