package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, ` region , temp_c
 south_rockies , -4.8
lizard_range
`)

	frame, err := ReadCSV(path)
	require.NoError(t, err)

	// Header and fields are whitespace-trimmed; short rows leave trailing
	// columns missing.
	assert.Equal(t, []string{"region", "temp_c"}, frame.Columns)
	require.Equal(t, 2, frame.Len())
	assert.Equal(t, "-4.8", frame.Rows[0]["temp_c"])
	assert.NotContains(t, frame.Rows[1], "temp_c")
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, path, "")

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestResolveStationPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.csv"), "region\n")
	writeFile(t, filepath.Join(dir, "a.csv"), "region\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	paths, err := resolveStationPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, paths)
}

func TestResolveStationPaths_EmptyDirectory(t *testing.T) {
	_, err := resolveStationPaths(t.TempDir())
	require.Error(t, err)
}
