package arrio

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with field helpers for the vocabulary of this
// package. The library logs nothing unless a logger is supplied through
// WithLogger.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler falls
// back to a text handler on stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithFile tags the logger with the filename being operated on.
func (l *Logger) WithFile(filename string) *Logger {
	return &Logger{Logger: l.Logger.With("file", filename)}
}

// WithCodec tags the logger with a codec name.
func (l *Logger) WithCodec(name string) *Logger {
	return &Logger{Logger: l.Logger.With("codec", name)}
}

// WithType tags the logger with an array descriptor.
func (l *Logger) WithType(info string) *Logger {
	return &Logger{Logger: l.Logger.With("dtype", info)}
}
