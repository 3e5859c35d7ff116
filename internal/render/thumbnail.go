package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Thumbnail grabs the frame at the middle of the video and writes it as
// <base>_thumb.jpg beside the video.
func (r *implRenderer) Thumbnail(ctx context.Context, videoPath string, duration float64) string {
	if videoPath == "" {
		return ""
	}
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	thumbPath := base + "_thumb.jpg"

	at := 0.0
	if duration > 0 {
		at = duration / 2
	}

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", at),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", fitFilter(ThumbnailSize),
		"-q:v", "2",
		thumbPath,
	}
	if _, err := r.executor.Execute(ctx, r.opts.FFmpegBinary, args...); err != nil {
		r.logger.Warn(ctx, "Thumbnail extraction failed for %s: %v", videoPath, err)
		return ""
	}
	if info, err := os.Stat(thumbPath); err != nil || info.Size() == 0 {
		r.logger.Warn(ctx, "Thumbnail %s was not written", thumbPath)
		return ""
	}
	return thumbPath
}
