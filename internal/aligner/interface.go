package aligner

import (
	"context"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// Aligner assigns a time interval and subtitles to every script scene.
type Aligner interface {
	Align(ctx context.Context, scenes []models.ScriptScene, transcript models.Transcript) models.Timeline
}

// TextCompleter is the scene-matching text service. Its output is untrusted.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
