package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"prodpick/internal/eventbus"
)

// Watcher reloads the catalog file into a store whenever it changes on disk
type Watcher struct {
	path    string
	store   ProductStore
	bus     eventbus.EventBus
	logger  *zap.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the catalog at path. Start must be
// called to begin watching.
func NewWatcher(path string, store ProductStore, bus eventbus.EventBus, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		path:    abs,
		store:   store,
		bus:     bus,
		logger:  logger.Named("catalog-watcher"),
		watcher: w,
	}, nil
}

// Start watches the catalog's directory until ctx is cancelled. The
// directory is watched rather than the file so editors that replace the
// file on save are still seen. Start closes the underlying watcher before
// returning.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.logger.Debug("watching catalog", zap.String("path", w.path))

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))

		case <-ctx.Done():
			w.logger.Debug("catalog watcher stopping")
			return nil
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	w.Reload()
}

// Reload reads the catalog file into the store and announces the result.
// A file that fails to load leaves the store unchanged.
func (w *Watcher) Reload() {
	products, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
		w.bus.Publish(eventbus.ErrorEvent{Message: "catalog reload failed", Err: err})
		return
	}

	removed := w.store.Replace(products)
	w.logger.Info("catalog reloaded",
		zap.String("path", w.path),
		zap.Int("products", len(products)),
		zap.Int("removed", len(removed)))

	w.bus.Publish(eventbus.CatalogReloadedEvent{Path: w.path, Products: products})
}
