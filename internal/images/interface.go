package images

import "context"

// Fetcher obtains one image per scene from an image generation service.
type Fetcher interface {
	// Fetch generates an image for prompt and saves it as <outputDir>/<sceneID>.jpg.
	Fetch(ctx context.Context, sceneID, prompt, outputDir string) ImageResult
}

// ImageResult reports the outcome of one Fetch.
type ImageResult struct {
	Success   bool   `json:"success"`
	ImagePath string `json:"imagePath,omitempty"`
	Error     string `json:"error,omitempty"`
}
