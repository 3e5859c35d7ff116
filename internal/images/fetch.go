package images

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// minImageBytes rejects error pages served with a 200.
const minImageBytes = 100

func (f *implFetcher) Fetch(ctx context.Context, sceneID, prompt, outputDir string) ImageResult {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ImageResult{Error: fmt.Sprintf("scene %s has no image prompt", sceneID)}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return ImageResult{Error: fmt.Sprintf("create image dir: %v", err)}
	}

	imageURL := f.imageURL(sceneID, prompt)
	outFile := filepath.Join(outputDir, sceneID+".jpg")
	f.logger.Info(ctx, "Generating image for scene %s: %q", sceneID, truncate(prompt, 60))

	var err error
	for attempt := 1; attempt <= f.opts.Attempts; attempt++ {
		err = f.download(ctx, imageURL, outFile)
		if err == nil {
			f.logger.Info(ctx, "Scene %s image saved: %s", sceneID, outFile)
			return ImageResult{Success: true, ImagePath: outFile}
		}
		f.logger.Warn(ctx, "Attempt %d failed for scene %s: %v", attempt, sceneID, err)
		if attempt == f.opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ImageResult{Error: ctx.Err().Error()}
		case <-time.After(time.Duration(attempt) * f.opts.RetryDelay):
		}
	}
	return ImageResult{Error: fmt.Sprintf("image fetch failed after %d attempts: %v", f.opts.Attempts, err)}
}

// imageURL builds <base>/<escaped prompt>?width&height&seed. The seed is
// derived from the scene id so a retry asks for the same picture.
func (f *implFetcher) imageURL(sceneID, prompt string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sceneID))

	q := url.Values{}
	q.Set("width", fmt.Sprint(f.opts.Width))
	q.Set("height", fmt.Sprint(f.opts.Height))
	q.Set("nologo", "true")
	q.Set("seed", fmt.Sprint(h.Sum32()%1000000))
	return strings.TrimRight(f.opts.BaseURL, "/") + "/" + url.PathEscape(prompt) + "?" + q.Encode()
}

func (f *implFetcher) download(ctx context.Context, imageURL, outFile string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "shortreel/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from image service", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) < minImageBytes {
		return fmt.Errorf("response too small (%d bytes), likely an error", len(data))
	}

	tmp := outFile + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, outFile)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
