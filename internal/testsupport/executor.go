// Package testsupport holds fakes shared by package tests.
package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Call records one command run through FakeExecutor.
type Call struct {
	Dir  string
	Name string
	Args []string
	// Files holds the concat manifest and subtitle contents as they were at
	// call time, keyed by base name. Renders delete them afterwards.
	Files map[string]string
}

// FakeExecutor stands in for ffmpeg and ffprobe. Encodes and thumbnails
// write a small placeholder to their output path; probes answer with
// ProbeDuration.
type FakeExecutor struct {
	ProbeDuration string
	ProbeErr      error
	EncodeErr     error
	ThumbnailErr  error
	// Handler, when set, takes over for any command it returns handled=true for.
	Handler func(call Call) (out string, handled bool, err error)

	mu    sync.Mutex
	calls []Call
}

func (f *FakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *FakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...), Files: map[string]string{}}
	if dir != "" {
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".txt") || strings.HasSuffix(e.Name(), ".srt") {
				data, err := os.ReadFile(filepath.Join(dir, e.Name()))
				if err == nil {
					call.Files[e.Name()] = string(data)
				}
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Handler != nil {
		if out, handled, err := f.Handler(call); handled {
			return out, err
		}
	}

	switch {
	case strings.Contains(name, "ffprobe"):
		if f.ProbeErr != nil {
			return "", f.ProbeErr
		}
		d := f.ProbeDuration
		if d == "" {
			d = "30.000000"
		}
		return fmt.Sprintf(`{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":1080,"height":1920}],"format":{"duration":%q}}`, d), nil
	case strings.Contains(name, "ffmpeg"):
		encode := contains(args, "concat")
		if encode && f.EncodeErr != nil {
			return "", f.EncodeErr
		}
		if !encode && f.ThumbnailErr != nil {
			return "", f.ThumbnailErr
		}
		out := args[len(args)-1]
		if dir != "" && !filepath.IsAbs(out) {
			out = filepath.Join(dir, out)
		}
		if err := os.WriteFile(out, []byte("fake media"), 0o644); err != nil {
			return "", err
		}
		return "", nil
	}
	return "", nil
}

// Calls returns a copy of every recorded call.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns recorded calls whose binary name contains name.
func (f *FakeExecutor) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if strings.Contains(c.Name, name) {
			out = append(out, c)
		}
	}
	return out
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

// WriteFiles creates each named file under dir with placeholder content and
// returns their paths in order.
func WriteFiles(dir string, names ...string) ([]string, error) {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
