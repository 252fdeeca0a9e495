package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Artifacts are the usable model files located after normalization.
type Artifacts struct {
	Weights []string `json:"weights"`
	Indexes []string `json:"indexes"`
}

// Empty reports whether no artifact was found.
func (a *Artifacts) Empty() bool {
	return len(a.Weights) == 0 && len(a.Indexes) == 0
}

// SearchArtifacts scans the top level of dir for weight (.pth) and
// index (.index) files. A missing directory yields an empty result.
func SearchArtifacts(dir string) (*Artifacts, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Model directory not found", "dir", dir)
			return &Artifacts{}, nil
		}
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	found := &Artifacts{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(entry.Name(), ".pth"):
			found.Weights = append(found.Weights, filepath.Join(dir, entry.Name()))
		case strings.HasSuffix(entry.Name(), ".index"):
			found.Indexes = append(found.Indexes, filepath.Join(dir, entry.Name()))
		}
	}

	return found, nil
}
