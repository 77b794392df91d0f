// Package watch re-runs transpilation when snippet sources change on disk.
// It backs the CLI's watch mode; the library core never watches anything.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler is invoked with the path of a changed snippet source.
type Handler func(path string)

// SourceWatcher watches a directory for snippet source changes, debouncing
// rapid saves before invoking the handler.
type SourceWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	extensions  map[string]bool
	handler     Handler
	debounceDur time.Duration
	debounceMap map[string]time.Time
	logger      *zap.Logger
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewSourceWatcher builds a watcher over dir for the given extensions
// (".js" style). A nil logger is replaced with a nop.
func NewSourceWatcher(dir string, extensions []string, debounce time.Duration, handler Handler, logger *zap.Logger) (*SourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &SourceWatcher{
		watcher:     fsw,
		dir:         dir,
		extensions:  exts,
		handler:     handler,
		debounceDur: debounce,
		debounceMap: make(map[string]time.Time),
		logger:      logger,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; events are handled in a goroutine
// until Stop or context cancellation.
func (w *SourceWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching for snippet changes", zap.String("dir", w.dir))

	go w.loop(ctx)
	return nil
}

// Stop halts the watcher and waits for the event loop to drain.
func (w *SourceWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *SourceWatcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if w.debounced(event.Name) {
				continue
			}
			w.logger.Debug("snippet changed", zap.String("path", event.Name))
			w.handler(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// debounced reports whether path fired within the debounce window.
func (w *SourceWatcher) debounced(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if last, ok := w.debounceMap[path]; ok && now.Sub(last) < w.debounceDur {
		return true
	}
	w.debounceMap[path] = now
	return false
}
