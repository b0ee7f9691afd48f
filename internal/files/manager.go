package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager provides the file management primitives the exporters build on.
// Dataset writes go through ReplaceFile so an artifact is either fully
// replaced or left untouched: the new content is staged beside the target
// and moved into place with a rename.
type Manager struct{}

// NewManager creates a new file manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// FileExists checks if a file exists at the given path.
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReplaceFile atomically replaces the file at path with content produced by
// stage. The stage callback writes to a temporary path in the same
// directory; only after it returns successfully is the temporary file
// renamed over the target. On any error the target is left untouched and
// the temporary file is removed.
func (m *Manager) ReplaceFile(path string, stage func(tmpPath string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	tmpPath := tmp.Name()
	// The stage callback creates the path itself; writers like parquet and
	// duckdb need a fresh path, not an open handle, so the reserved name is
	// released again before staging.
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close staging file: %w", err)
	}
	if err := os.Remove(tmpPath); err != nil {
		return fmt.Errorf("failed to release staging file: %w", err)
	}

	if err := stage(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move staged file into place: %w", err)
	}

	slog.Debug("Replaced artifact", slog.String("path", path))
	return nil
}

// RemoveIfExists deletes a file, ignoring the not-exists case.
func (m *Manager) RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
