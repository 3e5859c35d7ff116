package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/shortreel/internal/media"
	"github.com/nguyentantai21042004/shortreel/internal/models"
)

func (c *implCoordinator) AttachVoiceover(ctx context.Context, id, audioPath string) (*models.Project, error) {
	p, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == models.StatusProcessing {
		return nil, fmt.Errorf("%w: %s is rendering", ErrBusy, id)
	}
	if err := media.ValidateAudio(audioPath); err != nil {
		return nil, err
	}

	p, lock, err := c.lockProject(ctx, id)
	if err != nil {
		return nil, err
	}
	defer lock.release()

	staged, err := c.stageVoiceover(id, audioPath)
	if err != nil {
		return nil, err
	}
	defer staged.discard()

	c.logger.Info(ctx, "Transcribing voiceover for %s: %s", id, staged.path)
	transcript, err := c.transcriber.Transcribe(ctx, staged.path)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	timeline := c.aligner.Align(ctx, p.Script, transcript)
	carryImages(&timeline, p.Timeline)

	if err := staged.commit(); err != nil {
		return nil, fmt.Errorf("store voiceover: %w", err)
	}
	p.VoiceoverPath = staged.dest
	p.Timeline = &timeline
	p.ErrorMessage = ""
	p.Status = models.StatusVoiceoverUploaded
	if report, err := media.ValidateScenes(timeline.Scenes); err == nil && report.OK() {
		p.Status = models.StatusImagesReady
	}

	if err := c.store.Update(ctx, p); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "Voiceover attached to %s: %.2fs, %d scenes (%s)", id, timeline.TotalDuration, len(timeline.Scenes), timeline.AlignmentMethod)
	return p, nil
}

// stagedVoiceover is an upload copied next to the project's kept voiceover.
// The kept file is only replaced by commit, so a failed transcription leaves
// the previous voiceover matching the stored timeline.
type stagedVoiceover struct {
	path      string
	dest      string
	committed bool
}

func (c *implCoordinator) stageVoiceover(id, audioPath string) (*stagedVoiceover, error) {
	if c.opts.VoiceoverDir == "" {
		return &stagedVoiceover{path: audioPath, dest: audioPath}, nil
	}
	ext := strings.ToLower(filepath.Ext(audioPath))
	dest := filepath.Join(c.opts.VoiceoverDir, id+ext)
	srcAbs, _ := filepath.Abs(audioPath)
	destAbs, _ := filepath.Abs(dest)
	if srcAbs == destAbs {
		return &stagedVoiceover{path: dest, dest: dest}, nil
	}
	if err := os.MkdirAll(c.opts.VoiceoverDir, 0o755); err != nil {
		return nil, fmt.Errorf("create voiceover dir: %w", err)
	}
	tmp := filepath.Join(c.opts.VoiceoverDir, id+".incoming-"+uuid.NewString()[:8]+ext)
	if err := copyFile(audioPath, tmp); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("store voiceover: %w", err)
	}
	return &stagedVoiceover{path: tmp, dest: dest}, nil
}

func (s *stagedVoiceover) commit() error {
	if s.path == s.dest {
		return nil
	}
	if err := os.Rename(s.path, s.dest); err != nil {
		return err
	}
	s.committed = true
	return nil
}

func (s *stagedVoiceover) discard() {
	if s.committed || s.path == s.dest {
		return
	}
	_ = os.Remove(s.path)
}

// carryImages keeps images already acquired for scenes that survive a
// re-alignment.
func carryImages(next *models.Timeline, prev *models.Timeline) {
	if prev == nil {
		return
	}
	byID := make(map[string]models.TimelineScene, len(prev.Scenes))
	for _, s := range prev.Scenes {
		byID[s.ID] = s
	}
	for i := range next.Scenes {
		if old, ok := byID[next.Scenes[i].ID]; ok {
			next.Scenes[i].ImagePath = old.ImagePath
			next.Scenes[i].ImageSource = old.ImageSource
			next.Scenes[i].ImagePrompt = old.ImagePrompt
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
