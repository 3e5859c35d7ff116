package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/shortreel/internal/logger"
)

// AudioExtensions lists the voiceover formats picked up from the inbox.
var AudioExtensions = []string{".wav", ".mp3", ".m4a", ".aac", ".flac", ".ogg"}

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settle        time.Duration
	wg            sync.WaitGroup
}

// Start dispatches every <projectID>.<audio ext> created in the inbox to
// the handler until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Voiceover watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(AudioExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing voiceovers to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Voiceover watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			projectID, ok := ProjectIDFromPath(event.Name)
			if !ok {
				w.logger.Debug(ctx, "Ignoring non-voiceover file: %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New voiceover for project %s: %s", projectID, event.Name)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(projectID, filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if w.settle > 0 {
						select {
						case <-time.After(w.settle):
						case <-ctx.Done():
							return
						}
					}
					if err := w.handler(ctx, projectID, filePath); err != nil {
						w.logger.Error(ctx, "Failed to attach %s: %v", filePath, err)
					}
				}(projectID, event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// ProjectIDFromPath extracts the project id from an inbox file name. Hidden
// files, partial downloads and unsupported extensions are rejected.
func ProjectIDFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return "", false
	}
	if !IsAudioFile(base) {
		return "", false
	}
	id := strings.TrimSuffix(base, filepath.Ext(base))
	if id == "" {
		return "", false
	}
	return id, true
}

// IsAudioFile checks if the file has a supported voiceover extension.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range AudioExtensions {
		if ext == format {
			return true
		}
	}
	return false
}
