package archive

import (
	"os"
	"path/filepath"
	"strings"
)

const macJunkDir = "__MACOSX"

// Normalize flattens the extracted tree at dir and renames the model
// artifacts after modelName. Three steps, in order: drop platform
// metadata folders, hoist a single wrapper subdirectory, and give the
// weight and index files their canonical names.
func Normalize(dir, modelName string) error {
	if err := removeMacJunk(dir); err != nil {
		return err
	}
	if err := hoistSingleDir(dir); err != nil {
		return err
	}

	return renameArtifacts(dir, modelName)
}

func removeMacJunk(dir string) error {
	junk := filepath.Join(dir, macJunkDir)
	if _, err := os.Stat(junk); os.IsNotExist(err) {
		return nil
	}

	return os.RemoveAll(junk)
}

// hoistSingleDir moves the contents of a lone wrapper subdirectory up
// into dir. Zero or several subdirectories leave the layout untouched.
func hoistSingleDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
		}
	}
	if len(subdirs) != 1 {
		return nil
	}

	wrapper := filepath.Join(dir, subdirs[0])
	items, err := os.ReadDir(wrapper)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := os.Rename(filepath.Join(wrapper, item.Name()), filepath.Join(dir, item.Name())); err != nil {
			return err
		}
	}

	return os.Remove(wrapper)
}

// renameArtifacts renames top-level entries carrying the artifact
// extensions to <modelName>.pth / <modelName>.index. An entry whose
// destination already exists is skipped, so reruns are no-ops.
func renameArtifacts(dir, modelName string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		var canonical string
		switch {
		case strings.Contains(entry.Name(), ".pth"):
			canonical = modelName + ".pth"
		case strings.Contains(entry.Name(), ".index"):
			canonical = modelName + ".index"
		default:
			continue
		}

		destination := filepath.Join(dir, canonical)
		if _, err := os.Stat(destination); err == nil {
			continue
		}
		if err := os.Rename(filepath.Join(dir, entry.Name()), destination); err != nil {
			return err
		}
	}

	return nil
}
