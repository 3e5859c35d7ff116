package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/shortreel/internal/media"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/render"
	"github.com/nguyentantai21042004/shortreel/internal/storyboard"
)

// renderable lists every status a render may start from.
var renderable = []models.Status{
	models.StatusDraft,
	models.StatusVoiceoverUploaded,
	models.StatusImagesReady,
	models.StatusCompleted,
	models.StatusFailed,
}

func (c *implCoordinator) Render(ctx context.Context, id string) (*RenderResponse, error) {
	startTime := time.Now()

	if _, err := c.store.Get(ctx, id); err != nil {
		return nil, err
	}
	p, lock, err := c.lockProject(ctx, id)
	if err != nil {
		return nil, err
	}
	defer lock.release()

	if err := checkRenderable(p); err != nil {
		var pre *PreconditionError
		if errors.As(err, &pre) {
			return nil, err
		}
		return c.fail(context.WithoutCancel(ctx), p, fmt.Sprintf("check inputs: %v", err))
	}

	ok, err := c.store.TransitionStatus(ctx, id, renderable, models.StatusProcessing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is already rendering", ErrBusy, id)
	}
	p.Status = models.StatusProcessing

	// From here on the outcome is always persisted, even if ctx is cancelled.
	persistCtx := context.WithoutCancel(ctx)

	c.logger.Info(ctx, "========================================")
	c.logger.Info(ctx, "Rendering project %s: %d scenes, %.2fs", id, len(p.Timeline.Scenes), p.Timeline.TotalDuration)
	c.logger.Info(ctx, "========================================")

	if err := c.renderSlots.Acquire(ctx, 1); err != nil {
		return c.fail(persistCtx, p, fmt.Sprintf("waiting for render slot: %v", err))
	}
	defer c.renderSlots.Release(1)

	plan, err := render.BuildPlan(p.Timeline.Scenes, c.opts.TempDir)
	if err != nil {
		return c.fail(persistCtx, p, fmt.Sprintf("build sequence plan: %v", err))
	}

	res := c.renderer.Render(ctx, render.Request{
		Plan:       plan,
		AudioPath:  p.VoiceoverPath,
		OutputDir:  c.opts.OutputDir,
		OutputName: id + ".rendering.mp4",
		Aspect:     p.AspectRatio,
		Style:      c.opts.Style,
	})
	if !res.Success {
		return c.fail(persistCtx, p, res.Error)
	}
	// The previous video is only replaced once the new one is complete.
	videoPath := filepath.Join(filepath.Dir(res.VideoPath), id+".mp4")
	if err := os.Rename(res.VideoPath, videoPath); err != nil {
		_ = os.Remove(res.VideoPath)
		return c.fail(persistCtx, p, fmt.Sprintf("publish video: %v", err))
	}

	output := &models.Output{
		VideoPath:     videoPath,
		ThumbnailPath: c.renderer.Thumbnail(ctx, videoPath, res.Duration),
		Hashtags:      c.generateHashtags(ctx, p),
		Duration:      res.Duration,
		GeneratedAt:   time.Now().UTC(),
	}
	if c.opts.Storyboard {
		path := filepath.Join(c.opts.OutputDir, id+"_storyboard.docx")
		if err := storyboard.Write(p, path); err != nil {
			c.logger.Warn(ctx, "Storyboard export failed for %s: %v", id, err)
		} else {
			output.StoryboardPath = path
		}
	}

	p.Output = output
	p.Status = models.StatusCompleted
	p.ErrorMessage = ""
	if err := c.store.Update(persistCtx, p); err != nil {
		return nil, fmt.Errorf("persist output: %w", err)
	}

	c.logger.Info(ctx, "========================================")
	c.logger.Info(ctx, "Render completed: %s", output.VideoPath)
	c.logger.Info(ctx, "Thumbnail: %s", output.ThumbnailPath)
	c.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	c.logger.Info(ctx, "========================================")

	return &RenderResponse{ProjectID: id, Success: true, Output: output}, nil
}

// checkRenderable validates inputs before anything is mutated. Missing inputs
// are a *PreconditionError; any other error is a filesystem failure.
func checkRenderable(p *models.Project) error {
	if p.VoiceoverPath == "" {
		return &PreconditionError{ProjectID: p.ID, Reason: "no voiceover uploaded"}
	}
	if err := media.ValidateAudio(p.VoiceoverPath); err != nil {
		if !errors.Is(err, media.ErrAudioMissing) {
			return err
		}
		return &PreconditionError{ProjectID: p.ID, Reason: err.Error()}
	}
	if p.Timeline.Empty() {
		return &PreconditionError{ProjectID: p.ID, Reason: "timeline is empty"}
	}
	report, err := media.ValidateScenes(p.Timeline.Scenes)
	if err != nil {
		return err
	}
	if !report.OK() {
		return &PreconditionError{ProjectID: p.ID, Reason: "scenes missing images", MissingScenes: report.MissingScenes}
	}
	return nil
}

func (c *implCoordinator) fail(ctx context.Context, p *models.Project, msg string) (*RenderResponse, error) {
	c.logger.Error(ctx, "Render failed for %s: %s", p.ID, msg)
	p.Status = models.StatusFailed
	p.ErrorMessage = msg
	p.Output = nil
	if err := c.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("persist failure: %w", err)
	}
	return &RenderResponse{ProjectID: p.ID, Success: false, Error: msg}, nil
}

// generateHashtags never fails the render; no generator or an error yields [].
func (c *implCoordinator) generateHashtags(ctx context.Context, p *models.Project) []string {
	if c.hashtags == nil {
		return []string{}
	}
	tags, err := c.hashtags.GenerateHashtags(ctx, p.Topic, p.ScriptText())
	if err != nil {
		c.logger.Warn(ctx, "Hashtag generation failed for %s: %v", p.ID, err)
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
