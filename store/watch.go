package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the write+rename bursts a single save produces.
const DefaultWatchDebounce = 150 * time.Millisecond

// Watcher reports changes to persisted state files in a data directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	names    []string
	debounce time.Duration
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches dir and calls onChange (debounced) whenever one of the
// named files is written, created, renamed or removed.
func NewWatcher(dir string, names []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	return &Watcher{
		watcher:  fw,
		names:    names,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.matches(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) matches(path string) bool {
	return len(w.names) == 0 || slices.Contains(w.names, filepath.Base(path))
}

// Close stops the underlying watcher and any pending callback.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
