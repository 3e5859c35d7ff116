package storyboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

func sampleProject() *models.Project {
	return &models.Project{
		ID:          "p1",
		Topic:       "Octopus facts",
		AspectRatio: "9:16",
		Timeline: &models.Timeline{
			TotalDuration:   20,
			AlignmentMethod: models.AlignmentMatched,
			Scenes: []models.TimelineScene{
				{ID: "s1", Order: 0, StartTime: 0, EndTime: 10, Duration: 10, SceneText: "Three hearts.",
					SceneDescription: "octopus close-up", ImagePath: "/img/s1.jpg",
					Subtitles: []models.SubtitleChunk{{ID: "0.000_0", Start: 0, End: 1.2, Text: "Three hearts."}}},
				{ID: "s2", Order: 1, StartTime: 10, EndTime: 20, Duration: 10, SceneText: "Blue blood."},
			},
		},
	}
}

func TestOutline(t *testing.T) {
	lines := outline(sampleProject())

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.label+"|"+l.text)
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{
		"|Octopus facts",
		"Duration|0:20.00",
		"|Scene 1  [0:00.00 - 0:10.00]",
		"Visual|octopus close-up",
		"Image|s1.jpg",
		"|• 00:00:00,000  Three hearts.",
		"|Scene 2  [0:10.00 - 0:20.00]",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("outline missing %q:\n%s", want, joined)
		}
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "p1_storyboard.docx")
	if err := Write(sampleProject(), path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output is not a zip container")
	}
}

func TestWriteWithoutTimeline(t *testing.T) {
	if err := Write(&models.Project{ID: "p"}, filepath.Join(t.TempDir(), "x.docx")); err == nil {
		t.Error("Write() expected error for empty timeline")
	}
}
