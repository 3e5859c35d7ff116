package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

var tagColors = map[string]string{
	"DEBUG": "\x1b[90m",
	"INFO":  "\x1b[36m",
	"WARN":  "\x1b[33m",
	"ERROR": "\x1b[31m",
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger    *log.Logger
	level     string
	component string
	color     bool
}

// New creates a Logger writing to stdout. Level tags are colored when stdout
// is a terminal.
func New(level string) Logger {
	l := NewWithWriter(level, os.Stdout).(*implLogger)
	fd := os.Stdout.Fd()
	l.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return l
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(level string, w io.Writer) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  strings.ToLower(strings.TrimSpace(level)),
	}
}

// Nop returns a Logger that discards everything. Handy in tests.
func Nop() Logger {
	return NewWithWriter("error", io.Discard)
}

func (l *implLogger) Named(component string) Logger {
	name := component
	if l.component != "" {
		name = l.component + "." + component
	}
	return &implLogger{logger: l.logger, level: l.level, component: name, color: l.color}
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = levels["info"]
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) print(level, tag, msg string, args []interface{}) {
	if !l.shouldLog(level) {
		return
	}
	prefix := "[" + tag + "] "
	if l.color {
		prefix = tagColors[tag] + "[" + tag + "]\x1b[0m "
	}
	if l.component != "" {
		prefix += "[" + l.component + "] "
	}
	l.logger.Printf(prefix+msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.print("debug", "DEBUG", msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.print("info", "INFO", msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.print("warn", "WARN", msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.print("error", "ERROR", msg, args)
}
