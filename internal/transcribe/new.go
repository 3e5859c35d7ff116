package transcribe

import (
	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/pkg/executor"
)

// Options configures the whisper.cpp adapter.
type Options struct {
	BinaryPath   string
	ModelPath    string
	Language     string
	Threads      int
	FFmpegBinary string
	ProbeBinary  string
	// TempDir receives the 16 kHz WAV and whisper's JSON output.
	TempDir string
}

type implWhisper struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Transcriber backed by the whisper.cpp CLI.
func NewWhisper(opts Options, exec executor.Executor, log logger.Logger) Transcriber {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "whisper-cli"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	if opts.FFmpegBinary == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if opts.ProbeBinary == "" {
		opts.ProbeBinary = "ffprobe"
	}
	return &implWhisper{
		opts:     opts,
		executor: exec,
		logger:   log.Named("transcribe"),
	}
}
