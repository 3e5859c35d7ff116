package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if log := New(tt.level); log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"warn doesn't log at error level", "error", "warn", false},
		{"unknown config level defaults to info", "loud", "debug", false},
		{"error always logs", "debug", "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			if got := log.shouldLog(tt.logLevel); got != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", got, tt.shouldLog)
			}
		})
	}
}

func TestNamedPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf).Named("render").Named("ffmpeg")

	log.Info(context.Background(), "encoding %d scenes", 3)

	out := buf.String()
	if !strings.Contains(out, "[INFO] [render.ffmpeg] encoding 3 scenes") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("filtered levels leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn message") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestColorTagsKeepComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf).(*implLogger)
	log.color = true

	log.Named("store").Error(context.Background(), "disk full")

	out := buf.String()
	if !strings.Contains(out, "\x1b[31m[ERROR]\x1b[0m [store] disk full") {
		t.Errorf("unexpected colored line: %q", out)
	}
}
