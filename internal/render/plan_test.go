package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/testsupport"
)

func threeScenes(t *testing.T) []models.TimelineScene {
	t.Helper()
	paths, err := testsupport.WriteFiles(t.TempDir(), "a.jpg", "b.jpg", "c.jpg")
	if err != nil {
		t.Fatalf("write images: %v", err)
	}
	return []models.TimelineScene{
		{ID: "s1", Order: 0, StartTime: 0, EndTime: 10, Duration: 10, ImagePath: paths[0],
			Subtitles: []models.SubtitleChunk{{ID: "0.000_0", Start: 0, End: 2, Text: "hello there"}}},
		{ID: "s2", Order: 1, StartTime: 10, EndTime: 20, Duration: 10, ImagePath: paths[1],
			Subtitles: []models.SubtitleChunk{{ID: "10.000_0", Start: 10, End: 12, Text: "second scene"}}},
		{ID: "s3", Order: 2, StartTime: 20, EndTime: 30, Duration: 10, ImagePath: paths[2]},
	}
}

func TestBuildPlanManifest(t *testing.T) {
	scenes := threeScenes(t)
	plan, err := BuildPlan(scenes, t.TempDir())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	defer plan.Cleanup()

	data, err := os.ReadFile(plan.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 {
		t.Fatalf("manifest has %d lines, want 7:\n%s", len(lines), data)
	}

	counts := map[string]int{}
	for _, line := range lines {
		if strings.HasPrefix(line, "file ") {
			counts[line]++
		}
	}
	for i, scene := range scenes {
		want := 1
		if i == len(scenes)-1 {
			want = 2
		}
		line := "file '" + scene.ImagePath + "'"
		if counts[line] != want {
			t.Errorf("%s listed %d times, want %d", scene.ImagePath, counts[line], want)
		}
	}
	if lines[1] != "duration 10.000" {
		t.Errorf("lines[1] = %q, want duration 10.000", lines[1])
	}
	if plan.TotalDuration != 30 {
		t.Errorf("TotalDuration = %v, want 30", plan.TotalDuration)
	}
}

func TestBuildPlanSubtitles(t *testing.T) {
	plan, err := BuildPlan(threeScenes(t), t.TempDir())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	defer plan.Cleanup()

	if plan.Cues != 2 {
		t.Errorf("Cues = %d, want 2", plan.Cues)
	}
	data, err := os.ReadFile(plan.SubtitlePath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	srt := string(data)
	if !strings.HasPrefix(srt, "1\n00:00:00,000 --> 00:00:02,000\nhello there") {
		t.Errorf("unexpected srt:\n%s", srt)
	}
	if !strings.Contains(srt, "2\n00:00:10,000 --> 00:00:12,000\nsecond scene") {
		t.Errorf("second cue missing:\n%s", srt)
	}
}

func TestBuildPlanUniqueFiles(t *testing.T) {
	dir := t.TempDir()
	scenes := threeScenes(t)
	a, err := BuildPlan(scenes, dir)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	b, err := BuildPlan(scenes, dir)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if a.ManifestPath == b.ManifestPath || a.SubtitlePath == b.SubtitlePath {
		t.Fatalf("plans share temp files: %s %s", a.ManifestPath, b.ManifestPath)
	}

	a.Cleanup()
	if _, err := os.Stat(b.ManifestPath); err != nil {
		t.Errorf("cleaning one plan removed another's manifest: %v", err)
	}
	b.Cleanup()
}

func TestPlanCleanupIdempotent(t *testing.T) {
	plan, err := BuildPlan(threeScenes(t), t.TempDir())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	plan.Cleanup()
	plan.Cleanup()
	for _, p := range []string{plan.ManifestPath, plan.SubtitlePath} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still exists after Cleanup", p)
		}
	}
	var nilPlan *Plan
	nilPlan.Cleanup()
}

func TestBuildPlanEscapesQuotes(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "it's.jpg")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	plan, err := BuildPlan([]models.TimelineScene{{ID: "s1", Duration: 5, EndTime: 5, ImagePath: img}}, dir)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	defer plan.Cleanup()

	data, _ := os.ReadFile(plan.ManifestPath)
	want := "file '" + strings.ReplaceAll(img, "'", `'\''`) + "'"
	if !strings.Contains(string(data), want) {
		t.Errorf("manifest missing escaped path %q:\n%s", want, data)
	}
}

func TestBuildPlanErrors(t *testing.T) {
	if _, err := BuildPlan(nil, t.TempDir()); err == nil {
		t.Error("BuildPlan(nil) expected error")
	}
	if _, err := BuildPlan([]models.TimelineScene{{ID: "s1", Duration: 1}}, t.TempDir()); err == nil {
		t.Error("BuildPlan() with no image expected error")
	}
}
