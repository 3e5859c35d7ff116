package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/testsupport"
)

const sampleWhisper = `{
  "transcription": [
    {
      "offsets": {"from": 0, "to": 2000},
      "text": " Octopuses have three hearts.",
      "tokens": [
        {"text": "[_BEG_]", "offsets": {"from": 0, "to": 0}},
        {"text": " Oct", "offsets": {"from": 0, "to": 300}},
        {"text": "opuses", "offsets": {"from": 300, "to": 700}},
        {"text": " have", "offsets": {"from": 700, "to": 1000}},
        {"text": " three", "offsets": {"from": 1000, "to": 1400}},
        {"text": " hearts", "offsets": {"from": 1400, "to": 1900}},
        {"text": ".", "offsets": {"from": 1900, "to": 2000}},
        {"text": "[_TT_100]", "offsets": {"from": 2000, "to": 2000}}
      ]
    },
    {
      "offsets": {"from": 2000, "to": 3500},
      "text": " Blue blood.",
      "tokens": [
        {"text": "Blue", "offsets": {"from": 2000, "to": 2600}},
        {"text": " blood.", "offsets": {"from": 2600, "to": 3500}}
      ]
    },
    {"offsets": {"from": 3500, "to": 3600}, "text": " ", "tokens": []}
  ]
}`

func TestParseWhisperJSON(t *testing.T) {
	got, err := ParseWhisperJSON([]byte(sampleWhisper))
	if err != nil {
		t.Fatalf("ParseWhisperJSON() error = %v", err)
	}
	want := models.Transcript{
		FullText: "Octopuses have three hearts. Blue blood.",
		Words: []models.Word{
			{Text: "Octopuses", Start: 0, End: 0.7},
			{Text: "have", Start: 0.7, End: 1},
			{Text: "three", Start: 1, End: 1.4},
			{Text: "hearts.", Start: 1.4, End: 2},
			{Text: "Blue", Start: 2, End: 2.6},
			{Text: "blood.", Start: 2.6, End: 3.5},
		},
		Segments: []models.Segment{
			{Index: 0, Start: 0, End: 2, Text: "Octopuses have three hearts."},
			{Index: 1, Start: 2, End: 3.5, Text: "Blue blood."},
		},
		Duration: 3.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseWhisperJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWhisperJSONInvalid(t *testing.T) {
	if _, err := ParseWhisperJSON([]byte("{")); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestTranscribe(t *testing.T) {
	tmp := t.TempDir()
	fake := &testsupport.FakeExecutor{ProbeDuration: "4.250000"}
	fake.Handler = func(call testsupport.Call) (string, bool, error) {
		if call.Name != "whisper-cli" {
			return "", false, nil
		}
		for i, a := range call.Args {
			if a == "--output-file" {
				return "", true, os.WriteFile(call.Args[i+1]+".json", []byte(sampleWhisper), 0o644)
			}
		}
		return "", true, errors.New("no --output-file")
	}

	w := NewWhisper(Options{ModelPath: "model.bin", TempDir: tmp}, fake, logger.Nop())
	got, err := w.Transcribe(context.Background(), filepath.Join(tmp, "voice.mp3"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got.Duration != 4.25 {
		t.Errorf("Duration = %v, want probed 4.25", got.Duration)
	}
	if len(got.Words) != 6 {
		t.Errorf("len(Words) = %d, want 6", len(got.Words))
	}

	entries, _ := os.ReadDir(tmp)
	if len(entries) != 0 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestTranscribeWhisperFailure(t *testing.T) {
	fake := &testsupport.FakeExecutor{}
	fake.Handler = func(call testsupport.Call) (string, bool, error) {
		if call.Name == "whisper-cli" {
			return "", true, errors.New("model not found")
		}
		return "", false, nil
	}
	w := NewWhisper(Options{ModelPath: "model.bin", TempDir: t.TempDir()}, fake, logger.Nop())
	if _, err := w.Transcribe(context.Background(), "voice.mp3"); err == nil {
		t.Error("Transcribe() expected error")
	}
}

func TestTranscribeRequiresModel(t *testing.T) {
	w := NewWhisper(Options{TempDir: t.TempDir()}, &testsupport.FakeExecutor{}, logger.Nop())
	if _, err := w.Transcribe(context.Background(), "voice.mp3"); err == nil {
		t.Error("Transcribe() without model expected error")
	}
}
