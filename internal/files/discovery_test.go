package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestDiscovery_FindDatasetFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeTestFile(t, dir, "old.csv", now.Add(-2*time.Hour))
	writeTestFile(t, dir, "new.xlsx", now.Add(-1*time.Hour))
	writeTestFile(t, dir, "ignored.txt", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	files, err := NewDiscovery(dir).FindDatasetFiles(".")
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "new.xlsx", files[0].Name)
	assert.Equal(t, "old.csv", files[1].Name)
}

func TestDiscovery_FindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeTestFile(t, dir, "a.csv", now)
	writeTestFile(t, dir, "B.CSV", now.Add(-time.Minute))
	writeTestFile(t, dir, "c.xlsx", now)

	files, err := NewDiscovery(dir).FindCSVFiles(".")
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "B.CSV", files[1].Name)
}

func TestDiscovery_AbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.csv", time.Now())

	// absolute dir bypasses the discovery base path
	files, err := NewDiscovery("/nonexistent").FindCSVFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscovery_Newest(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeTestFile(t, dir, "old.csv", now.Add(-time.Hour))
	writeTestFile(t, dir, "new.csv", now)

	newest, err := NewDiscovery(dir).Newest(".")
	require.NoError(t, err)
	assert.Equal(t, "new.csv", newest.Name)

	t.Run("empty directory", func(t *testing.T) {
		empty := t.TempDir()
		_, err := NewDiscovery(empty).Newest(".")
		assert.Error(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewDiscovery(dir).Newest("missing")
		assert.Error(t, err)
	})
}
