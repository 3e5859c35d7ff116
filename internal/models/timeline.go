package models

// ScriptScene is a scene produced by script generation, before any timing is known.
type ScriptScene struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	VisualDescription string `json:"visualDescription"`
}

// SubtitleChunk is a short caption shown on screen for a few words of speech.
type SubtitleChunk struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TimelineScene is a script scene after alignment against the voiceover.
type TimelineScene struct {
	ID               string          `json:"id"`
	Order            int             `json:"order"`
	StartTime        float64         `json:"startTime"`
	EndTime          float64         `json:"endTime"`
	Duration         float64         `json:"duration"`
	SceneText        string          `json:"sceneText"`
	SceneDescription string          `json:"sceneDescription"`
	ImagePrompt      string          `json:"imagePrompt"`
	ImagePath        string          `json:"imagePath,omitempty"`
	ImageSource      string          `json:"imageSource,omitempty"`
	Subtitles        []SubtitleChunk `json:"subtitles"`
}

// Alignment methods recorded on a Timeline.
const (
	AlignmentMatched  = "matched"
	AlignmentFallback = "fallback"
)

// Timeline is the ordered, gapless set of scenes covering the whole voiceover.
type Timeline struct {
	TotalDuration   float64         `json:"totalDuration"`
	AlignmentMethod string          `json:"alignmentMethod,omitempty"`
	Scenes          []TimelineScene `json:"scenes"`
}

// Empty reports whether the timeline has no scenes.
func (t *Timeline) Empty() bool {
	return t == nil || len(t.Scenes) == 0
}

// AllSubtitles flattens every scene's chunks in scene order.
func (t *Timeline) AllSubtitles() []SubtitleChunk {
	if t == nil {
		return nil
	}
	var out []SubtitleChunk
	for _, scene := range t.Scenes {
		out = append(out, scene.Subtitles...)
	}
	return out
}
