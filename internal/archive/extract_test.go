package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip writes a zip archive holding the given name -> content entries.
func buildZip(t *testing.T, path string, entries []struct{ Name, Content string }) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		fw, err := w.Create(entry.Name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(entry.Content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "model.zip")
	buildZip(t, zipPath, []struct{ Name, Content string }{
		{"wrapper/model.pth", "weights"},
		{"wrapper/model.index", "index"},
		{"readme.txt", "hello"},
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, Extract(zipPath, dest))

	assert.FileExists(t, filepath.Join(dest, "wrapper", "model.pth"))
	assert.FileExists(t, filepath.Join(dest, "wrapper", "model.index"))
	assert.FileExists(t, filepath.Join(dest, "readme.txt"))
	assert.NoFileExists(t, zipPath, "archive must be removed after extraction")

	content, err := os.ReadFile(filepath.Join(dest, "wrapper", "model.pth"))
	require.NoError(t, err)
	assert.Equal(t, "weights", string(content))
}

func TestExtract_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("not a zip"), 0o644))

	err := Extract(zipPath, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, ErrExtract)
	assert.FileExists(t, zipPath, "archive must survive a failed extraction")
}

func TestExtract_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	buildZip(t, zipPath, []struct{ Name, Content string }{
		{"../escape.txt", "pwned"},
	})

	err := Extract(zipPath, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, ErrExtract)
	assert.NoFileExists(t, filepath.Join(dir, "escape.txt"))
}
