package logger

import "context"

// Logger is the leveled logger passed to every component.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	// Named returns a logger that prefixes every line with the component name.
	Named(component string) Logger
}
