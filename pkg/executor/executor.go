package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout is returned when a command is killed because its deadline expired.
var ErrTimeout = errors.New("command timed out")

// maxStderr bounds how much stderr is copied into an error message.
const maxStderr = 4096

type implExecutor struct {
	timeout time.Duration
}

// Option customizes the executor.
type Option func(*implExecutor)

// WithTimeout kills commands that run longer than d. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *implExecutor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// New creates a new Executor instance
func New(opts ...Option) Executor {
	e := &implExecutor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(ctx, "", name, args)
}

// ExecuteInDir runs an external command in a specific working directory.
// ffmpeg's subtitles filter is much easier to feed a bare filename than an
// escaped absolute path, so the renderer relies on this.
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return e.run(ctx, dir, name, args)
}

func (e *implExecutor) run(ctx context.Context, dir, name string, args []string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("command '%s': %w after %s", name, ErrTimeout, e.timeout)
		}
		// Include stderr in error message for debugging
		stderrStr := tail(strings.TrimSpace(stderr.String()), maxStderr)
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// tail keeps the last n bytes; ffmpeg puts the useful error at the end.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
