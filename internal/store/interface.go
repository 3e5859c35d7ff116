package store

import (
	"context"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// Store persists projects.
type Store interface {
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	// Update overwrites every mutable field of an existing project.
	Update(ctx context.Context, p *models.Project) error
	// TransitionStatus moves the project to `to` only when its current status
	// is one of from. It reports whether the transition happened.
	TransitionStatus(ctx context.Context, id string, from []models.Status, to models.Status) (bool, error)
	Close() error
}
