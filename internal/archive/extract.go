// Package archive unpacks staged zip files and normalizes the layout
// they leave behind.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks the zip archive at zipPath into destDir, then removes
// the archive. When unpacking itself fails the archive is left in
// place; either failure surfaces as ErrExtract.
func Extract(zipPath, destDir string) error {
	if err := extractZip(zipPath, destDir); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExtract, zipPath, err)
	}

	if err := os.Remove(zipPath); err != nil {
		return fmt.Errorf("%w: cleanup of %s: %w", ErrExtract, zipPath, err)
	}

	return nil
}

func extractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := extractEntry(file, destDir); err != nil {
			return err
		}
	}

	return nil
}

func extractEntry(file *zip.File, destDir string) error {
	target, err := entryPath(destDir, file.Name)
	if err != nil {
		return err
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// entryPath joins an archive entry name onto destDir, refusing names
// that would land outside it.
func entryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal entry path: %s", name)
	}

	return target, nil
}
