package llm

import "context"

// Client sends prompts to Gemini.
type Client interface {
	// Complete returns the model's text answer to prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// GenerateHashtags suggests up to MaxHashtags social hashtags for a video.
	GenerateHashtags(ctx context.Context, topic, scriptText string) ([]string, error)
}
