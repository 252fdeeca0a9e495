package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher installs archives dropped into the staging directory.
type Watcher struct {
	manager  *Manager
	dir      string
	debounce time.Duration
	installs atomic.Uint32
}

// NewWatcher creates a watcher over the manager's staging directory.
func NewWatcher(manager *Manager) *Watcher {
	return &Watcher{
		manager:  manager,
		dir:      manager.cfg.ZipsPath(),
		debounce: 500 * time.Millisecond,
	}
}

// Run watches the staging directory until ctx is canceled. Writes are
// debounced per file so an archive still being copied in is not
// installed early.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch staging directory %s: %w", w.dir, err)
	}

	slog.Info("Watching staging directory", "dir", w.dir)

	timers := make(map[string]*time.Timer)
	defer func() {
		for _, timer := range timers {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".zip") {
				continue
			}

			if timer, ok := timers[event.Name]; ok {
				timer.Stop()
			}

			path := event.Name
			timers[path] = time.AfterFunc(w.debounce, func() {
				w.installDropped(ctx, path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("Watcher error", "error", err)
		}
	}
}

// InstallCount returns the number of archives the watcher has picked up.
func (w *Watcher) InstallCount() uint32 {
	return w.installs.Load()
}

func (w *Watcher) installDropped(ctx context.Context, path string) {
	count := w.installs.Add(1)
	slog.Info("Installing dropped archive", "path", path, "count", count)

	if _, err := w.manager.Install(ctx, path); err != nil {
		slog.Error("Failed to install dropped archive", "path", path, "error", err)
	}
}
