package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models"), ExpandTilde("~/models"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/opt/models", ExpandTilde("/opt/models"))
	assert.Equal(t, "relative/path", ExpandTilde("relative/path"))
	assert.Equal(t, "~user/models", ExpandTilde("~user/models"))
}

func TestSanitizeNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, `my\model.zip`), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.zip"), []byte("y"), 0o644))

	require.NoError(t, SanitizeNames(dir))

	assert.FileExists(t, filepath.Join(dir, "my_model.zip"))
	assert.FileExists(t, filepath.Join(dir, "plain.zip"))
	assert.NoFileExists(t, filepath.Join(dir, `my\model.zip`))
}

func TestSanitizeNames_Nested(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, `a\b.pth`), []byte("x"), 0o644))

	require.NoError(t, SanitizeNames(dir))

	assert.FileExists(t, filepath.Join(sub, "a_b.pth"))
}
