package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// projectLock is an OS file lock on one project. Every operation that
// rewrites the project holds it from its read to its write, so a second
// process (or goroutine) cannot interleave with it.
type projectLock struct {
	lock *flock.Flock
}

func (c *implCoordinator) tryLock(id string) (*projectLock, error) {
	if err := os.MkdirAll(c.opts.LockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(filepath.Join(c.opts.LockDir, id+".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock project %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is locked by another operation", ErrBusy, id)
	}
	return &projectLock{lock: lock}, nil
}

func (l *projectLock) release() {
	if l == nil || l.lock == nil {
		return
	}
	_ = l.lock.Unlock()
}

// lockProject takes the project lock and reads the project under it.
// Projects that are rendering are rejected.
func (c *implCoordinator) lockProject(ctx context.Context, id string) (*models.Project, *projectLock, error) {
	lock, err := c.tryLock(id)
	if err != nil {
		return nil, nil, err
	}
	p, err := c.store.Get(ctx, id)
	if err != nil {
		lock.release()
		return nil, nil, err
	}
	if p.Status == models.StatusProcessing {
		lock.release()
		return nil, nil, fmt.Errorf("%w: %s is rendering", ErrBusy, id)
	}
	return p, lock, nil
}
