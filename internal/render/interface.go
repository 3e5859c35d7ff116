package render

import (
	"context"
	"fmt"
)

// Renderer drives ffmpeg/ffprobe to turn a sequence plan into a video.
type Renderer interface {
	// Render encodes the plan with the voiceover. It always cleans up the
	// plan's temp files and reports failure through Result, not an error.
	Render(ctx context.Context, req Request) Result
	// Thumbnail extracts one still frame next to the video. It returns ""
	// when extraction fails.
	Thumbnail(ctx context.Context, videoPath string, duration float64) string
	// Probe reads container and stream metadata.
	Probe(ctx context.Context, path string) (ProbeResult, error)
}

// Request describes one render invocation.
type Request struct {
	Plan       *Plan
	AudioPath  string
	OutputDir  string
	OutputName string
	Aspect     string
	Style      Style
}

// Result is the outcome of Render.
type Result struct {
	Success   bool    `json:"success"`
	VideoPath string  `json:"videoPath,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func failure(format string, args ...interface{}) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}
