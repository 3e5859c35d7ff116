package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/shortreel/internal/logger"
)

func TestProjectIDFromPath(t *testing.T) {
	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{path: "/inbox/abc-123.mp3", wantID: "abc-123", wantOK: true},
		{path: "/inbox/abc.WAV", wantID: "abc", wantOK: true},
		{path: "/inbox/p.final.m4a", wantID: "p.final", wantOK: true},
		{path: "/inbox/abc.mp4", wantOK: false},
		{path: "/inbox/.abc.mp3", wantOK: false},
		{path: "/inbox/abc.mp3.part", wantOK: false},
		{path: "/inbox/.mp3", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := ProjectIDFromPath(tt.path)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("ProjectIDFromPath(%q) = %q, %v; want %q, %v", tt.path, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestWatcherDispatchesVoiceovers(t *testing.T) {
	dir := t.TempDir()
	type event struct{ id, path string }
	got := make(chan event, 4)

	w, err := New(dir, func(ctx context.Context, projectID, filePath string) error {
		got <- event{projectID, filePath}
		return nil
	}, logger.Nop(), 2, WithSettle(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	voice := filepath.Join(dir, "p42.mp3")
	if err := os.WriteFile(voice, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-got:
		if e.id != "p42" || e.path != voice {
			t.Errorf("handler got %+v, want p42 %s", e, voice)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if len(got) != 0 {
		t.Errorf("unexpected extra events: %d", len(got))
	}
}
