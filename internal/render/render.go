package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/shortreel/internal/media"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/pkg/executor"
)

// Render encodes the plan's slideshow with burned-in subtitles and the
// voiceover into a single MP4.
func (r *implRenderer) Render(ctx context.Context, req Request) Result {
	if req.Plan == nil {
		return failure("no sequence plan")
	}
	defer req.Plan.Cleanup()

	dims, err := AspectDimensions(req.Aspect)
	if err != nil {
		return failure("%v", err)
	}

	if err := media.ValidateAudio(req.AudioPath); err != nil {
		return failure("%v", err)
	}
	report, err := media.ValidateScenes(planScenes(req.Plan))
	if err != nil {
		return failure("%v", err)
	}
	if !report.OK() {
		return failure("%s", report.Error())
	}

	audioPath, err := filepath.Abs(req.AudioPath)
	if err != nil {
		return failure("resolve audio path: %v", err)
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return failure("create output dir: %v", err)
	}
	name := req.OutputName
	if name == "" {
		name = "video-" + uuid.NewString()[:8] + ".mp4"
	}
	outputPath, err := filepath.Abs(filepath.Join(req.OutputDir, name))
	if err != nil {
		return failure("resolve output path: %v", err)
	}

	args := r.encodeArgs(req.Plan, audioPath, outputPath, dims, req.Style)
	r.logger.Info(ctx, "Encoding %d scene(s) to %s (%dx%d)", len(req.Plan.Entries), outputPath, dims.Width, dims.Height)
	r.logger.Debug(ctx, "%s %s", r.opts.FFmpegBinary, strings.Join(args, " "))

	if _, err := r.executor.ExecuteInDir(ctx, req.Plan.Dir, r.opts.FFmpegBinary, args...); err != nil {
		_ = os.Remove(outputPath)
		if errors.Is(err, executor.ErrTimeout) {
			r.logger.Error(ctx, "Encode timed out: %v", err)
			return failure("encode timed out: %v", err)
		}
		r.logger.Error(ctx, "Encode failed: %v", err)
		return failure("ffmpeg encode failed: %v", err)
	}

	duration := req.Plan.TotalDuration
	probe, err := r.Probe(ctx, outputPath)
	if err != nil {
		r.logger.Warn(ctx, "Could not probe %s, using planned duration %.2fs: %v", outputPath, duration, err)
	} else if d := probe.DurationSeconds(); d > 0 {
		duration = d
	} else {
		r.logger.Warn(ctx, "ffprobe reported no duration for %s, using planned duration %.2fs", outputPath, duration)
	}

	r.logger.Info(ctx, "Rendered %s (%.2fs)", outputPath, duration)
	return Result{Success: true, VideoPath: outputPath, Duration: duration}
}

func (r *implRenderer) encodeArgs(plan *Plan, audioPath, outputPath string, dims Dimensions, style Style) []string {
	filter := fitFilter(dims)
	// libass rejects an empty SRT, so a silent script is encoded without one.
	if plan.Cues > 0 {
		filter += fmt.Sprintf(",subtitles=%s:force_style='%s'", filepath.Base(plan.SubtitlePath), style.forceStyle())
	}

	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", plan.ManifestPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-vf", filter,
		"-r", strconv.Itoa(r.opts.FPS),
		"-c:v", r.opts.VideoCodec,
		"-preset", r.opts.Preset,
		"-crf", strconv.Itoa(r.opts.CRF),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", r.opts.AudioBitrate,
		"-shortest",
		"-movflags", "+faststart",
		outputPath,
	}
}

func planScenes(plan *Plan) []models.TimelineScene {
	scenes := make([]models.TimelineScene, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		scenes = append(scenes, models.TimelineScene{ID: e.SceneID, ImagePath: e.ImagePath})
	}
	return scenes
}
