package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRawFiles(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	touch("marginalpdbc_20251001.1")
	touch("marginalpdbc_20251001.2")
	touch("marginalpdbc_20250930.1")
	touch("marginalpdbc_invalid")
	touch("notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "marginalpdbc_20251002.1"), 0o755))

	d := NewDiscovery(dir, testNamer())
	found, skipped, err := d.FindRawFiles()
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
	assert.Equal(t, []string{
		"marginalpdbc_20250930.1",
		"marginalpdbc_20251001.2",
		"marginalpdbc_20251001.1",
	}, names)

	// Prefix-matching names that fail to parse are reported; unrelated
	// files and directories are ignored outright.
	assert.Equal(t, []string{"marginalpdbc_invalid"}, skipped)
}

func TestFindRawFilesMissingDirectory(t *testing.T) {
	d := NewDiscovery(filepath.Join(t.TempDir(), "absent"), testNamer())
	_, _, err := d.FindRawFiles()
	require.Error(t, err)
}
