package models

import "time"

// Status is the lifecycle state of a project.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusVoiceoverUploaded Status = "voiceover-uploaded"
	StatusImagesReady       Status = "images-ready"
	StatusProcessing        Status = "processing"
	StatusCompleted         Status = "completed"
	StatusFailed            Status = "failed"
)

// Terminal reports whether the status ends a render attempt.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Output is the deliverable of a successful render.
type Output struct {
	VideoPath      string    `json:"videoPath"`
	ThumbnailPath  string    `json:"thumbnailPath,omitempty"`
	StoryboardPath string    `json:"storyboardPath,omitempty"`
	Hashtags       []string  `json:"hashtags"`
	Duration       float64   `json:"duration"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Project groups the script, voiceover, timeline and output of one video.
type Project struct {
	ID            string        `json:"id"`
	Topic         string        `json:"topic"`
	AspectRatio   string        `json:"aspectRatio"`
	Status        Status        `json:"status"`
	Script        []ScriptScene `json:"script"`
	VoiceoverPath string        `json:"voiceoverPath,omitempty"`
	Timeline      *Timeline     `json:"timeline,omitempty"`
	Output        *Output       `json:"output,omitempty"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ScriptText joins all scene texts, used as context for hashtag generation.
func (p *Project) ScriptText() string {
	var text string
	for i, scene := range p.Script {
		if i > 0 {
			text += " "
		}
		text += scene.Text
	}
	return text
}
