package xfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces a leading tilde (~) with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// SanitizeNames walks root and renames files whose stem carries a path
// separator, replacing each separator with an underscore. The extension
// is preserved.
func SanitizeNames(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		name := d.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		clean := strings.ReplaceAll(stem, "/", "_")
		clean = strings.ReplaceAll(clean, `\`, "_")
		if clean == stem {
			return nil
		}

		return os.Rename(path, filepath.Join(filepath.Dir(path), clean+ext))
	})
}
