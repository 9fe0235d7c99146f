package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mfeld/lucid/internal/logging"
)

// ReloadCallback is called when the config file is successfully
// reloaded. A callback error is logged but the watcher keeps watching
// with the previous valid config.
type ReloadCallback func(cfg *Config) error

// WatcherConfig holds configuration for the config file watcher.
type WatcherConfig struct {
	// FilePath is the YAML config file to watch.
	FilePath string

	// DebounceMillis coalesces file change events within this period
	// into a single reload. Editors often emit several events per save.
	// Default: 500ms.
	DebounceMillis int
}

// Watcher watches the engine config file for changes and triggers
// reload callbacks with debouncing. Invalid configs during reload are
// logged and skipped; the watcher does not stop.
type Watcher struct {
	config   WatcherConfig
	callback ReloadCallback
	logger   *logging.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for the given config file. The callback
// is invoked once with the initial config and again after each change
// that yields a valid config.
func NewWatcher(config WatcherConfig, callback ReloadCallback) (*Watcher, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("FilePath cannot be empty")
	}
	if callback == nil {
		return nil, fmt.Errorf("callback cannot be nil")
	}
	if config.DebounceMillis == 0 {
		config.DebounceMillis = 500
	}
	return &Watcher{
		config:   config,
		callback: callback,
		logger:   logging.GetLogger("config.watcher"),
	}, nil
}

// Start loads the initial config, invokes the callback, and then blocks
// watching for file changes until the context is cancelled. Returns an
// error if the initial load or callback fails.
func (w *Watcher) Start(ctx context.Context) error {
	initial, err := Load(w.config.FilePath)
	if err != nil {
		return fmt.Errorf("failed to load initial config: %w", err)
	}
	if err := w.callback(initial); err != nil {
		return fmt.Errorf("initial reload callback failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a watch registered on the file itself.
	dir := filepath.Dir(w.config.FilePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}
	w.logger.Info("watching config file %s", w.config.FilePath)

	for {
		select {
		case <-ctx.Done():
			w.cancelDebounce()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.config.FilePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorWithErr("config watcher error", err)
		}
	}
}

// scheduleReload (re)arms the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(
		time.Duration(w.config.DebounceMillis)*time.Millisecond,
		w.reload,
	)
}

func (w *Watcher) cancelDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// reload loads the changed file and hands the config to the callback.
func (w *Watcher) reload() {
	cfg, err := Load(w.config.FilePath)
	if err != nil {
		w.logger.ErrorWithErr("config reload skipped, file invalid", err)
		return
	}
	if err := w.callback(cfg); err != nil {
		w.logger.ErrorWithErr("config reload callback failed", err)
		return
	}
	w.logger.Info("config reloaded from %s", w.config.FilePath)
}
