package transcribe

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// Transcribe converts the audio, runs whisper.cpp with full JSON output and
// maps its segments and tokens onto a Transcript.
func (w *implWhisper) Transcribe(ctx context.Context, audioPath string) (models.Transcript, error) {
	if w.opts.ModelPath == "" {
		return models.Transcript{}, fmt.Errorf("whisper model path is not configured")
	}
	if err := os.MkdirAll(w.opts.TempDir, 0o755); err != nil {
		return models.Transcript{}, fmt.Errorf("create temp dir: %w", err)
	}

	wavPath, err := w.toWAV(ctx, audioPath)
	if err != nil {
		return models.Transcript{}, err
	}
	defer os.Remove(wavPath)

	outputPrefix := strings.TrimSuffix(wavPath, ".wav")
	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.opts.Threads, audioPath)

	// -ojf: full JSON, the only output carrying per-token offsets
	args := []string{
		"-m", w.opts.ModelPath,
		"-f", wavPath,
		"-ojf",
		"-l", w.opts.Language,
		"-t", strconv.Itoa(w.opts.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if _, err := w.executor.Execute(ctx, w.opts.BinaryPath, args...); err != nil {
		return models.Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return models.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}
	transcript, err := ParseWhisperJSON(data)
	if err != nil {
		return models.Transcript{}, err
	}

	if d, err := w.duration(ctx, audioPath); err != nil {
		w.logger.Warn(ctx, "Using transcript end as duration: %v", err)
	} else {
		transcript.Duration = d
	}

	w.logger.Info(ctx, "Transcription completed: %d segments, %d words, %.2fs",
		len(transcript.Segments), len(transcript.Words), transcript.Duration)
	return transcript, nil
}
