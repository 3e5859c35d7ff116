package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/shortreel/internal/store"
)

var (
	// ErrNotFound is returned for unknown project ids.
	ErrNotFound = store.ErrNotFound
	// ErrBusy is returned when the project is already being rendered.
	ErrBusy = errors.New("project is busy")
	// ErrInvalidInput wraps rejected CreateProject arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoImageService is returned by AcquireImages when no fetcher is configured.
	ErrNoImageService = errors.New("no image service configured")
)

// PreconditionError explains why a project cannot be rendered yet. Nothing
// has been changed when it is returned.
type PreconditionError struct {
	ProjectID     string
	Reason        string
	MissingScenes []string
}

func (e *PreconditionError) Error() string {
	if len(e.MissingScenes) > 0 {
		return fmt.Sprintf("project %s not ready: %s: %s", e.ProjectID, e.Reason, strings.Join(e.MissingScenes, ", "))
	}
	return fmt.Sprintf("project %s not ready: %s", e.ProjectID, e.Reason)
}
