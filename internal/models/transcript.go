package models

// Word is a single transcribed word with its timing in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a phrase-level transcription unit.
type Segment struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the output of the speech-to-text collaborator.
type Transcript struct {
	FullText string    `json:"fullText"`
	Words    []Word    `json:"words"`
	Segments []Segment `json:"segments"`
	Duration float64   `json:"duration"`
}
