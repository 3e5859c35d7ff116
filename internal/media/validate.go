package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// ErrAudioMissing is returned when the voiceover file cannot be used.
var ErrAudioMissing = errors.New("voiceover audio missing")

// Report lists every scene that cannot be rendered for lack of an image.
type Report struct {
	MissingScenes []string
}

// OK reports whether every scene has a usable image.
func (r Report) OK() bool {
	return len(r.MissingScenes) == 0
}

func (r Report) Error() string {
	return fmt.Sprintf("%d scene(s) missing images: %s", len(r.MissingScenes), strings.Join(r.MissingScenes, ", "))
}

// ValidateScenes checks every scene rather than stopping at the first problem,
// so callers can report the full list in one go. Only unexpected filesystem
// failures are returned as errors.
func ValidateScenes(scenes []models.TimelineScene) (Report, error) {
	report := Report{}
	for _, scene := range scenes {
		ok, err := readableFile(scene.ImagePath)
		if err != nil {
			return Report{}, fmt.Errorf("check image for scene %s: %w", scene.ID, err)
		}
		if !ok {
			report.MissingScenes = append(report.MissingScenes, scene.ID)
		}
	}
	return report, nil
}

// ValidateAudio checks that the voiceover file exists and can be read.
func ValidateAudio(path string) error {
	ok, err := readableFile(path)
	if err != nil {
		return fmt.Errorf("check audio %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrAudioMissing, path)
	}
	return nil
}

// readableFile is false for empty paths, missing files, directories and files
// we are not allowed to open.
func readableFile(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	_ = f.Close()
	return true, nil
}
