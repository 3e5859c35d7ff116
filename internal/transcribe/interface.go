package transcribe

import (
	"context"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// Transcriber turns a voiceover into timed words and segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (models.Transcript, error)
}
