package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/shortreel/internal/logger"
)

// DefaultSettle is how long a new file is left alone before it is handled,
// so uploads that are still being copied are not read half-written.
const DefaultSettle = 500 * time.Millisecond

// Option customizes the watcher.
type Option func(*implWatcher)

// WithSettle overrides DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(w *implWatcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// New creates a Watcher on inboxDir with concurrency control.
func New(inboxDir string, handler EventHandler, log logger.Logger, maxConcurrent int, opts ...Option) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	w := &implWatcher{
		inboxDir:      inboxDir,
		handler:       handler,
		logger:        log.Named("watcher"),
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settle:        DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}
