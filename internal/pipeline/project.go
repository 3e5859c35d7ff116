package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/render"
)

func (c *implCoordinator) CreateProject(ctx context.Context, topic, aspect string, script []models.ScriptScene) (*models.Project, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if aspect == "" {
		aspect = "9:16"
	}
	if _, err := render.AspectDimensions(aspect); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("%w: script has no scenes", ErrInvalidInput)
	}

	scenes := make([]models.ScriptScene, len(script))
	seen := make(map[string]bool, len(script))
	for i, scene := range script {
		if strings.TrimSpace(scene.Text) == "" {
			return nil, fmt.Errorf("%w: scene %d has no text", ErrInvalidInput, i+1)
		}
		if scene.ID == "" {
			scene.ID = fmt.Sprintf("scene-%d", i+1)
		}
		if seen[scene.ID] {
			return nil, fmt.Errorf("%w: duplicate scene id %q", ErrInvalidInput, scene.ID)
		}
		seen[scene.ID] = true
		scenes[i] = scene
	}

	p := &models.Project{
		ID:          uuid.NewString(),
		Topic:       topic,
		AspectRatio: aspect,
		Status:      models.StatusDraft,
		Script:      scenes,
	}
	if err := c.store.Create(ctx, p); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "Created project %s (%d scenes, %s): %s", p.ID, len(scenes), aspect, topic)
	return p, nil
}

func (c *implCoordinator) Project(ctx context.Context, id string) (*models.Project, error) {
	return c.store.Get(ctx, id)
}

func (c *implCoordinator) RecoverInterrupted(ctx context.Context) (int, error) {
	projects, err := c.store.List(ctx)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, p := range projects {
		if p.Status != models.StatusProcessing {
			continue
		}
		lock, err := c.tryLock(p.ID)
		if err != nil {
			// A live render still holds it.
			continue
		}
		err = c.failInterrupted(ctx, p.ID)
		lock.release()
		if err != nil {
			return recovered, err
		}
		c.logger.Warn(ctx, "Project %s was left processing, marked failed", p.ID)
		recovered++
	}
	return recovered, nil
}

func (c *implCoordinator) failInterrupted(ctx context.Context, id string) error {
	p, err := c.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != models.StatusProcessing {
		return nil
	}
	p.Status = models.StatusFailed
	p.ErrorMessage = "render interrupted"
	p.Output = nil
	return c.store.Update(ctx, p)
}
