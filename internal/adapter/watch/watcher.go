package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches rapid filesystem events into one trigger.
const DefaultDebounce = 200 * time.Millisecond

var ignoredDirs = map[string]bool{
	".git":         true,
	".textparser":  true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
}

// Watcher watches a directory tree recursively and coalesces bursts of
// change events into single ticks on Changes.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	skip     map[string]bool
	events   chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

// NewWatcher watches root and every non-ignored subdirectory. skipDirs
// names additional directories to leave unwatched (the output dir).
func NewWatcher(root string, debounce time.Duration, skipDirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fw:       fw,
		debounce: debounce,
		skip:     make(map[string]bool),
		events:   make(chan struct{}, 1),
	}
	for name := range ignoredDirs {
		w.skip[name] = true
	}
	for _, name := range skipDirs {
		if name != "" {
			w.skip[filepath.Base(name)] = true
		}
	}

	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// Changes delivers one tick per settled burst of filesystem changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.events
}

// Errors exposes the underlying watcher's error stream.
func (w *Watcher) Errors() <-chan error {
	return w.fw.Errors
}

// Run processes filesystem events until ctx is cancelled, then closes
// the underlying watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.maybeWatchNewDir(event.Name)
			}
			w.markDirty()
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.skip[filepath.Base(path)] {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

func (w *Watcher) maybeWatchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if w.skip[filepath.Base(path)] {
		return
	}
	// Files may already exist inside the new directory; a walk picks
	// up nested subdirectories too.
	w.addTree(path)
}

func (w *Watcher) markDirty() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.pending {
		return
	}
	select {
	case w.events <- struct{}{}:
	default:
		// A tick is already queued.
	}
	w.pending = false
}
