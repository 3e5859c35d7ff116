package render

import (
	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/pkg/executor"
)

// Options holds the fixed encoder parameters.
type Options struct {
	FFmpegBinary string
	ProbeBinary  string
	VideoCodec   string
	Preset       string
	CRF          int
	AudioBitrate string
	FPS          int
}

func (o Options) withDefaults() Options {
	if o.FFmpegBinary == "" {
		o.FFmpegBinary = "ffmpeg"
	}
	if o.ProbeBinary == "" {
		o.ProbeBinary = "ffprobe"
	}
	if o.VideoCodec == "" {
		o.VideoCodec = "libx264"
	}
	if o.Preset == "" {
		o.Preset = "medium"
	}
	if o.CRF == 0 {
		o.CRF = 23
	}
	if o.AudioBitrate == "" {
		o.AudioBitrate = "192k"
	}
	if o.FPS == 0 {
		o.FPS = 30
	}
	return o
}

type implRenderer struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Renderer. The executor decides whether encodes are bounded
// by a timeout.
func New(opts Options, exec executor.Executor, log logger.Logger) Renderer {
	return &implRenderer{
		opts:     opts.withDefaults(),
		executor: exec,
		logger:   log.Named("render"),
	}
}
