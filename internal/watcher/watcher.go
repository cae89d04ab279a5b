// Package watcher reloads the knowledge file when it changes on disk.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// KnowledgeWatcher watches a single knowledge file and invokes a reload
// callback after changes settle. It watches the parent directory rather
// than the file itself because editors typically replace the file by
// rename, which would otherwise drop the watch.
type KnowledgeWatcher struct {
	path     string
	onChange func()
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	started  bool
	done     chan struct{}
	stopOnce sync.Once
}

// NewKnowledgeWatcher returns a watcher for the file at path. onChange runs
// on the watcher goroutine after the debounce window.
func NewKnowledgeWatcher(path string, onChange func(), logger *zap.Logger) *KnowledgeWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeWatcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *KnowledgeWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.started = true
	w.mu.Unlock()

	w.logger.Debug("knowledge watcher started", zap.String("path", w.path))
	go w.run(ctx, watcher)
	return nil
}

// run takes the fsnotify watcher as an argument; Stop nils the struct field
// under the mutex, so the loop must not read it again.
func (w *KnowledgeWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("knowledge watcher error", zap.Error(err))
			}
		}
	}
}

func (w *KnowledgeWatcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("knowledge file changed",
		zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	w.scheduleReload()
}

// scheduleReload resets the debounce timer so a burst of writes yields a
// single reload.
func (w *KnowledgeWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Debug("knowledge reload triggered", zap.String("path", w.path))
		if w.onChange != nil {
			w.onChange()
		}
	})
}

// Stop stops watching and releases resources.
func (w *KnowledgeWatcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
