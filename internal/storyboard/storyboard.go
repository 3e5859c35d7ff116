// Package storyboard exports a project's timeline as a DOCX document for
// review: one block per scene with timecodes, narration, visual notes and
// captions.
package storyboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/pkg/timefmt"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 12
	titleSize = 16
	sceneSize = 14
)

// line is one paragraph of the storyboard.
type line struct {
	label string
	text  string
	bold  bool
	size  uint64
}

// Write renders p's timeline to outputPath.
func Write(p *models.Project, outputPath string) error {
	if p == nil || p.Timeline.Empty() {
		return errors.New("storyboard: project has no timeline")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("storyboard: create dir: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("storyboard: new document: %w", err)
	}
	for _, l := range outline(p) {
		addLine(doc.AddParagraph(""), l)
	}
	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("storyboard: save %s: %w", outputPath, err)
	}
	return nil
}

func outline(p *models.Project) []line {
	tl := p.Timeline
	lines := []line{
		{text: p.Topic, bold: true, size: titleSize},
		{label: "Aspect ratio", text: p.AspectRatio},
		{label: "Duration", text: timefmt.FormatClock(tl.TotalDuration)},
		{label: "Alignment", text: tl.AlignmentMethod},
	}

	for _, scene := range tl.Scenes {
		lines = append(lines,
			line{},
			line{
				text: fmt.Sprintf("Scene %d  [%s - %s]", scene.Order+1,
					timefmt.FormatClock(scene.StartTime), timefmt.FormatClock(scene.EndTime)),
				bold: true,
				size: sceneSize,
			},
			line{label: "Narration", text: scene.SceneText},
		)
		if scene.SceneDescription != "" {
			lines = append(lines, line{label: "Visual", text: scene.SceneDescription})
		}
		if scene.ImagePath != "" {
			lines = append(lines, line{label: "Image", text: filepath.Base(scene.ImagePath)})
		}
		for _, chunk := range scene.Subtitles {
			lines = append(lines, line{text: fmt.Sprintf("• %s  %s", timefmt.FormatSRT(chunk.Start), strings.TrimSpace(chunk.Text))})
		}
	}
	return lines
}

func addLine(p *docx.Paragraph, l line) {
	size := l.size
	if size == 0 {
		size = fontSize
	}
	if l.label != "" {
		p.AddText(l.label+": ").Font(fontName).Size(size).Color("000000").Bold(true)
	}
	if l.text == "" {
		return
	}
	run := p.AddText(l.text).Font(fontName).Size(size).Color("000000")
	if l.bold {
		run.Bold(true)
	}
}
