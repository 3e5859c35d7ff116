package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/nguyentantai21042004/shortreel/internal/images"
	"github.com/nguyentantai21042004/shortreel/internal/media"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func (c *implCoordinator) AcquireImages(ctx context.Context, id string) (*ImagesResponse, error) {
	if c.images == nil {
		return nil, ErrNoImageService
	}
	p, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == models.StatusProcessing {
		return nil, fmt.Errorf("%w: %s is rendering", ErrBusy, id)
	}
	if p.Timeline.Empty() {
		return nil, &PreconditionError{ProjectID: id, Reason: "no timeline, upload a voiceover first"}
	}

	p, lock, err := c.lockProject(ctx, id)
	if err != nil {
		return nil, err
	}
	defer lock.release()
	if p.Timeline.Empty() {
		return nil, &PreconditionError{ProjectID: id, Reason: "no timeline, upload a voiceover first"}
	}

	report, err := media.ValidateScenes(p.Timeline.Scenes)
	if err != nil {
		return nil, err
	}
	missing := lo.Associate(report.MissingScenes, func(sceneID string) (string, bool) {
		return sceneID, true
	})

	resp := &ImagesResponse{Project: p, Failed: map[string]string{}}
	dir := filepath.Join(c.opts.ImagesDir, id)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.MaxConcurrentImages)
	for i := range p.Timeline.Scenes {
		scene := p.Timeline.Scenes[i]
		if !missing[scene.ID] {
			continue
		}
		prompt, _ := lo.Coalesce(scene.ImagePrompt, scene.SceneDescription, scene.SceneText)

		g.Go(func() error {
			res := c.images.Fetch(gctx, scene.ID, prompt, dir)

			mu.Lock()
			defer mu.Unlock()
			if !res.Success {
				resp.Failed[scene.ID] = res.Error
				return nil
			}
			p.Timeline.Scenes[i].ImagePath = res.ImagePath
			p.Timeline.Scenes[i].ImageSource = images.Source
			if p.Timeline.Scenes[i].ImagePrompt == "" {
				p.Timeline.Scenes[i].ImagePrompt = prompt
			}
			resp.Fetched++
			return nil
		})
	}
	_ = g.Wait()

	if len(resp.Failed) == 0 {
		p.Status = models.StatusImagesReady
	}
	// Partial progress is kept so a retry only asks for what is still missing.
	if err := c.store.Update(context.WithoutCancel(ctx), p); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "Images for %s: %d fetched, %d failed", id, resp.Fetched, len(resp.Failed))
	if err := ctx.Err(); err != nil {
		return resp, err
	}
	return resp, nil
}
