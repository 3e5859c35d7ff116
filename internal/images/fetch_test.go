package images

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nguyentantai21042004/shortreel/internal/logger"
)

var fakeJPEG = bytes.Repeat([]byte{0xFF}, 512)

func TestFetchSuccess(t *testing.T) {
	urls := make(chan *url.URL, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls <- r.URL
		_, _ = w.Write(fakeJPEG)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(Options{BaseURL: srv.URL + "/prompt", Width: 720, Height: 1280}, logger.Nop())
	res := f.Fetch(context.Background(), "s1", "an octopus in the deep sea", dir)
	if !res.Success {
		t.Fatalf("Fetch() failed: %s", res.Error)
	}
	if res.ImagePath != filepath.Join(dir, "s1.jpg") {
		t.Errorf("ImagePath = %q", res.ImagePath)
	}
	if data, _ := os.ReadFile(res.ImagePath); !bytes.Equal(data, fakeJPEG) {
		t.Error("saved image does not match response body")
	}
	got := <-urls
	if got.Path != "/prompt/an octopus in the deep sea" {
		t.Errorf("path = %q", got.Path)
	}
	for _, want := range []string{"width=720", "height=1280", "seed="} {
		if !strings.Contains(got.RawQuery, want) {
			t.Errorf("query %q missing %q", got.RawQuery, want)
		}
	}
}

func TestFetchRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(fakeJPEG)
	}))
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL}, logger.Nop())
	res := f.Fetch(context.Background(), "s1", "prompt", t.TempDir())
	if !res.Success {
		t.Fatalf("Fetch() failed: %s", res.Error)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("server hit %d times, want 3", n)
	}
}

func TestFetchRejectsTinyBody(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	res := New(Options{BaseURL: srv.URL}, logger.Nop()).Fetch(context.Background(), "s1", "prompt", dir)
	if res.Success {
		t.Fatal("Fetch() succeeded on a tiny body")
	}
	if !strings.Contains(res.Error, "too small") {
		t.Errorf("Error = %q", res.Error)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("server hit %d times, want 3", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "s1.jpg")); !os.IsNotExist(err) {
		t.Error("image file written despite failure")
	}
}

func TestFetchEmptyPrompt(t *testing.T) {
	res := New(Options{}, logger.Nop()).Fetch(context.Background(), "s1", "  ", t.TempDir())
	if res.Success || res.Error == "" {
		t.Errorf("Fetch() = %+v, want failure", res)
	}
}

func TestImageURLStableSeed(t *testing.T) {
	f := New(Options{BaseURL: "https://example.test/prompt/"}, logger.Nop()).(*implFetcher)
	a := f.imageURL("s1", "a b")
	if a != f.imageURL("s1", "a b") {
		t.Error("imageURL not deterministic")
	}
	if !strings.HasPrefix(a, "https://example.test/prompt/a%20b?") {
		t.Errorf("imageURL = %q", a)
	}
}
