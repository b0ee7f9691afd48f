package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Discovery scans the raw-file directory for daily OMIE files.
type Discovery struct {
	dataDir string
	namer   *Namer
}

// NewDiscovery creates a new file discovery instance over the raw directory.
func NewDiscovery(dataDir string, namer *Namer) *Discovery {
	return &Discovery{dataDir: dataDir, namer: namer}
}

// FindRawFiles enumerates candidate raw daily files. Entries whose name
// starts with the configured prefix but fails to parse are returned as
// skipped names with the parse reason; files unrelated to the prefix are
// ignored outright. The result is in deterministic (date, zone, revision)
// order.
func (d *Discovery) FindRawFiles() ([]RawFile, []string, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", d.dataDir, err)
	}

	var files []RawFile
	var skipped []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, d.namer.Prefix()+"_") {
			continue
		}

		parsed, err := d.namer.Parse(name)
		if err != nil {
			slog.Warn("Skipping raw file with unparsable name",
				slog.String("file", name),
				slog.String("reason", err.Error()))
			skipped = append(skipped, name)
			continue
		}

		parsed.Path = filepath.Join(d.dataDir, name)
		files = append(files, parsed)
	}

	SortRawFiles(files)

	slog.Debug("Raw file discovery complete",
		slog.String("dir", d.dataDir),
		slog.Int("matched", len(files)),
		slog.Int("skipped", len(skipped)))

	return files, skipped, nil
}
