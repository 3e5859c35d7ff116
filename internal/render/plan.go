package render

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/subtitle"
)

// Entry is one still image shown for a fixed duration.
type Entry struct {
	SceneID   string
	ImagePath string
	Duration  float64
}

// Plan is the set of temp files handed to ffmpeg for one render: a concat
// demuxer manifest and an SRT file. Both carry a unique suffix so concurrent
// renders sharing a temp directory never collide.
type Plan struct {
	ID            string
	Dir           string
	ManifestPath  string
	SubtitlePath  string
	Entries       []Entry
	Cues          int
	TotalDuration float64

	once sync.Once
}

// BuildPlan writes the manifest and subtitle files for scenes into tempDir.
// Scenes must already have validated images.
func BuildPlan(scenes []models.TimelineScene, tempDir string) (*Plan, error) {
	if len(scenes) == 0 {
		return nil, errors.New("no scenes to render")
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	dir, err := filepath.Abs(tempDir)
	if err != nil {
		return nil, fmt.Errorf("resolve temp dir: %w", err)
	}

	id := uuid.NewString()
	plan := &Plan{
		ID:           id,
		Dir:          dir,
		ManifestPath: filepath.Join(dir, "concat-"+id+".txt"),
		SubtitlePath: filepath.Join(dir, "subs-"+id+".srt"),
	}

	var chunks []models.SubtitleChunk
	for _, scene := range scenes {
		if scene.ImagePath == "" {
			return nil, fmt.Errorf("scene %s has no image", scene.ID)
		}
		abs, err := filepath.Abs(scene.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("resolve image for scene %s: %w", scene.ID, err)
		}
		plan.Entries = append(plan.Entries, Entry{SceneID: scene.ID, ImagePath: abs, Duration: scene.Duration})
		plan.TotalDuration += scene.Duration
		chunks = append(chunks, scene.Subtitles...)
	}

	if err := writeFile(plan.ManifestPath, func(w *bufio.Writer) error {
		return writeManifest(w, plan.Entries)
	}); err != nil {
		plan.Cleanup()
		return nil, fmt.Errorf("write concat manifest: %w", err)
	}

	ordered := subtitle.SortChronologically(chunks)
	for _, c := range ordered {
		if strings.TrimSpace(c.Text) != "" {
			plan.Cues++
		}
	}
	if err := writeFile(plan.SubtitlePath, func(w *bufio.Writer) error {
		return subtitle.WriteSRT(w, ordered)
	}); err != nil {
		plan.Cleanup()
		return nil, fmt.Errorf("write subtitles: %w", err)
	}

	return plan, nil
}

// Cleanup removes the plan's temp files. It is safe to call more than once.
func (p *Plan) Cleanup() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		_ = os.Remove(p.ManifestPath)
		_ = os.Remove(p.SubtitlePath)
	})
}

// writeManifest emits concat demuxer lines. The last image is listed again
// without a duration, otherwise the demuxer ignores the final duration.
func writeManifest(w *bufio.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "file '%s'\nduration %.3f\n", quote(e.ImagePath), e.Duration); err != nil {
			return err
		}
	}
	last := entries[len(entries)-1]
	_, err := fmt.Fprintf(w, "file '%s'\n", quote(last.ImagePath))
	return err
}

// quote escapes a path for a single-quoted concat manifest string.
func quote(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

func writeFile(path string, fill func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
