// Package refresh reimports the card corpus when a local bulk-data file
// changes on disk.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the burst of write events a bulk-file
// download produces into one reimport.
const defaultDebounce = 2 * time.Second

// FileImporter loads a bulk JSON file into the card store.
type FileImporter interface {
	ImportFile(ctx context.Context, path string) (int, error)
}

// Watcher reimports a bulk-data file whenever it is rewritten.
type Watcher struct {
	path     string
	importer FileImporter
	logger   *slog.Logger
	debounce time.Duration
	stopChan chan struct{}
}

// NewWatcher creates a watcher for the given bulk file path.
func NewWatcher(path string, importer FileImporter, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		importer: importer,
		logger:   logger,
		debounce: defaultDebounce,
		stopChan: make(chan struct{}),
	}
}

// Start watches the bulk file until the context is cancelled or Stop is
// called. Downloads typically replace the file, so the parent directory
// is watched and events are filtered by name.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching bulk file for changes", "path", w.path)

	var debounce *time.Timer
	var reimport <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil

		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(w.debounce)
			} else {
				debounce.Reset(w.debounce)
			}
			reimport = debounce.C

		case err := <-watcher.Errors:
			w.logger.Warn("file watcher error", "error", err)

		case <-reimport:
			reimport = nil
			count, err := w.importer.ImportFile(ctx, w.path)
			if err != nil {
				w.logger.Error("bulk file reimport failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("bulk file reimported", "path", w.path, "cards", count)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
}
