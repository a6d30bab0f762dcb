package arrio

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFieldHelpers(t *testing.T) {
	var sb strings.Builder
	l := NewLogger(slog.NewJSONHandler(&sb, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithFile("a.mat").WithCodec("matlab.array.binary").WithType("float64(2, 3)").Debug("saved array")

	out := sb.String()
	assert.Contains(t, out, `"file":"a.mat"`)
	assert.Contains(t, out, `"codec":"matlab.array.binary"`)
	assert.Contains(t, out, `"dtype":"float64(2, 3)"`)
}

func TestNewJSONLoggerLevel(t *testing.T) {
	l := NewJSONLogger(slog.LevelWarn)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
