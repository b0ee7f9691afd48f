package files

import (
	"log/slog"

	"omiecli/pkg/contracts/domain"
)

// SelectLatest keeps, for each (date, zone), the single file with the
// highest numeric revision. Revisions mapping to different zones are
// different groups, never competing versions of one another, so no
// (date, zone) pair is ever dropped by this selection. Ties cannot occur:
// filenames within a directory are unique.
func SelectLatest(files []RawFile) []RawFile {
	latest := make(map[domain.DayKey]RawFile, len(files))
	for _, f := range files {
		key := f.DayKey()
		current, exists := latest[key]
		if !exists || f.Revision > current.Revision {
			if exists {
				slog.Info("Superseding raw file with higher revision",
					slog.String("old", current.Name),
					slog.String("new", f.Name))
			}
			latest[key] = f
		}
	}

	selected := make([]RawFile, 0, len(latest))
	for _, f := range latest {
		selected = append(selected, f)
	}
	SortRawFiles(selected)
	return selected
}
