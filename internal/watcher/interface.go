package watcher

import "context"

// Watcher monitors the voiceover inbox.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler receives a newly dropped voiceover and the project id taken
// from its file name.
type EventHandler func(ctx context.Context, projectID, filePath string) error
