package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// Coordinator owns the project lifecycle: script, voiceover, images, render.
type Coordinator interface {
	CreateProject(ctx context.Context, topic, aspect string, script []models.ScriptScene) (*models.Project, error)
	// AttachVoiceover transcribes the audio and aligns the script against it.
	AttachVoiceover(ctx context.Context, id, audioPath string) (*models.Project, error)
	// AcquireImages fetches an image for every scene that lacks one.
	AcquireImages(ctx context.Context, id string) (*ImagesResponse, error)
	// Render produces the video, thumbnail, hashtags and storyboard.
	Render(ctx context.Context, id string) (*RenderResponse, error)
	Project(ctx context.Context, id string) (*models.Project, error)
	// RecoverInterrupted fails projects left in processing by a crashed run.
	RecoverInterrupted(ctx context.Context) (int, error)
}

// HashtagGenerator suggests hashtags for a finished video.
type HashtagGenerator interface {
	GenerateHashtags(ctx context.Context, topic, scriptText string) ([]string, error)
}

// RenderResponse is the outcome of Render. A failed encode is reported here
// with Success false, not as an error.
type RenderResponse struct {
	ProjectID string         `json:"projectId"`
	Success   bool           `json:"success"`
	Output    *models.Output `json:"output,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// ImagesResponse is the outcome of AcquireImages.
type ImagesResponse struct {
	Project *models.Project   `json:"project"`
	Fetched int               `json:"fetched"`
	Failed  map[string]string `json:"failed,omitempty"`
}
