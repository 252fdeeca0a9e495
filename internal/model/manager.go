package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BF667/bfrvc/internal/archive"
	"github.com/BF667/bfrvc/internal/config"
	"github.com/BF667/bfrvc/internal/fetch"
	httplocal "github.com/BF667/bfrvc/internal/http"
	"github.com/BF667/bfrvc/internal/naming"
	"github.com/BF667/bfrvc/internal/xfs"
)

// Manager drives the model pipeline: fetch, extract, normalize, search.
type Manager struct {
	cfg      *config.Config
	fetcher  *fetch.Fetcher
	registry *Registry
	mu       sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithFetcher overrides the archive fetcher.
func WithFetcher(fetcher *fetch.Fetcher) Option {
	return func(m *Manager) {
		m.fetcher = fetcher
	}
}

// NewManager creates a Manager for the given configuration and
// prepares the staging directory.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		registry: NewRegistry(),
	}
	for _, fn := range opts {
		fn(m)
	}

	if m.fetcher == nil {
		m.fetcher = fetch.New(cfg)
	}

	if err := xfs.EnsureDir(cfg.ZipsPath()); err != nil {
		return nil, fmt.Errorf("failed to prepare staging directory %s: %w", cfg.ZipsPath(), err)
	}

	return m, nil
}

// Registry returns the installed-model registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Download runs the full pipeline for a remote source URL and returns
// the artifacts of the installed model.
func (m *Manager) Download(ctx context.Context, rawURL string, progress httplocal.Progresser) (*Artifacts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := slog.With("job_id", jobID(), "url", rawURL)
	log.Info("Starting model download")

	if _, err := m.fetcher.Fetch(ctx, rawURL, m.cfg.ZipsPath(), progress); err != nil {
		log.Error("Failed to fetch model archive", "error", err)
		return nil, err
	}

	zipPath, err := firstZip(m.cfg.ZipsPath())
	if err != nil {
		log.Error("No archive to install", "staging", m.cfg.ZipsPath(), "error", err)
		return nil, err
	}

	return m.install(log, zipPath)
}

// Install runs the local part of the pipeline on an archive already on
// disk, skipping the network stage.
func (m *Manager) Install(ctx context.Context, zipPath string) (*Artifacts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(zipPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoZipFound, zipPath)
	}

	log := slog.With("job_id", jobID(), "archive", zipPath)
	log.Info("Installing local archive")

	return m.install(log, zipPath)
}

// install extracts, normalizes, and searches one staged archive.
func (m *Manager) install(log *slog.Logger, zipPath string) (*Artifacts, error) {
	name := ModelName(zipPath)
	target := m.cfg.ModelPath(name)

	log.Info("Extracting model archive", "model", name, "target", target)
	if err := archive.Extract(zipPath, target); err != nil {
		log.Error("Failed to extract archive", "error", err)
		return nil, err
	}

	if err := archive.Normalize(target, name); err != nil {
		log.Error("Failed to normalize model layout", "error", err)
		return nil, fmt.Errorf("failed to normalize %s: %w", target, err)
	}

	artifacts, err := SearchArtifacts(target)
	if err != nil {
		return nil, err
	}
	if artifacts.Empty() {
		log.Warn("No model artifacts found after extraction", "dir", target)
	}

	m.registry.Set(name, artifacts)
	log.Info("Model installed", "model", name, "weights", len(artifacts.Weights), "indexes", len(artifacts.Indexes))

	return artifacts, nil
}

// ModelName derives the canonical model name from an archive path:
// everything before the first ".zip" in the base name, run through the
// title formatter.
func ModelName(zipPath string) string {
	base := filepath.Base(zipPath)
	stem, _, _ := strings.Cut(base, ".zip")
	return naming.FormatTitle(stem)
}

// firstZip returns the first archive in dir, in name order.
func firstZip(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to scan staging directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".zip") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", ErrNoZipFound
}

// jobID tags every pipeline run in the logs. UUIDv7 keeps concurrent
// watch-mode runs distinguishable and chronologically sortable.
func jobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("job-%d", time.Now().UnixNano())
	}
	return id.String()
}
