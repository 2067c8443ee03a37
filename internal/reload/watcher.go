// Package reload polls the catalog on disk and reloads it when it changes.
package reload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Loader reloads a catalog from a file or fragment directory
type Loader interface {
	Load(path string) error
}

// Watcher periodically checks the catalog path for changes
type Watcher struct {
	loader   Loader
	path     string
	interval time.Duration
	last     string
}

// NewWatcher creates a new reload worker
func NewWatcher(loader Loader, path string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Watcher{
		loader:   loader,
		path:     path,
		interval: interval,
	}
}

// Start begins the reload worker in a goroutine. The catalog currently on
// disk is taken as already loaded.
func (w *Watcher) Start(ctx context.Context) {
	w.last, _ = fingerprint(w.path)
	go w.run(ctx)
}

// run is the main loop for the reload worker
func (w *Watcher) run(ctx context.Context) {
	slog.Info("catalog watcher started", "path", w.path, "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("catalog watcher stopped")
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check reloads the catalog if its files changed since the last check and
// reports whether a reload was attempted. A failed reload is retried only
// after the files change again; the loader keeps serving the previous catalog.
func (w *Watcher) Check() bool {
	fp, err := fingerprint(w.path)
	if err != nil {
		slog.Error("failed to stat catalog", "path", w.path, "error", err)
		return false
	}
	if fp == w.last {
		slog.Debug("catalog unchanged", "path", w.path)
		return false
	}
	w.last = fp

	slog.Info("catalog changed, reloading", "path", w.path)
	if err := w.loader.Load(w.path); err != nil {
		slog.Error("catalog reload failed", "path", w.path, "error", err)
	}
	return true
}

// fingerprint summarizes name, size and modification time of the catalog
// file, or of every catalog fragment in a directory.
func fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return stamp(info), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, e := range entries {
		if e.IsDir() || !isFragment(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return "", err
		}
		parts = append(parts, stamp(fi))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|"), nil
}

func stamp(fi os.FileInfo) string {
	return fmt.Sprintf("%s:%d:%d", fi.Name(), fi.Size(), fi.ModTime().UnixNano())
}

func isFragment(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
