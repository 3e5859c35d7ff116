package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// toWAV converts the voiceover to 16 kHz mono PCM, the only input whisper.cpp
// accepts without its own resampling.
func (w *implWhisper) toWAV(ctx context.Context, audioPath string) (string, error) {
	wavPath := filepath.Join(w.opts.TempDir, "whisper-"+uuid.NewString()+".wav")

	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}
	if _, err := w.executor.Execute(ctx, w.opts.FFmpegBinary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}
	return wavPath, nil
}

// duration asks ffprobe for the container duration of audioPath.
func (w *implWhisper) duration(ctx context.Context, audioPath string) (float64, error) {
	out, err := w.executor.Execute(ctx, w.opts.ProbeBinary,
		"-v", "error", "-show_entries", "format=duration", "-of", "json", "--", audioPath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", audioPath)
	}
	return d, nil
}
