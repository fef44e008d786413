package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLogLevel(tc.in), "level %q", tc.in)
	}
}

func TestCLIHandler_Enabled(t *testing.T) {
	h := NewCLIHandler(&bytes.Buffer{}, slog.LevelWarn)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestCLIHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelDebug))

	logger.Info("audit complete", "project", "Uniswap", "score", 84)

	out := buf.String()
	assert.Contains(t, out, "audit complete")
	assert.Contains(t, out, "project=Uniswap")
	assert.Contains(t, out, "score=84")
	assert.Contains(t, out, colorGreen)
}

func TestCLIHandler_LevelColors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelDebug))

	logger.Warn("degraded")
	assert.Contains(t, buf.String(), colorYellow)

	buf.Reset()
	logger.Error("failed")
	assert.Contains(t, buf.String(), colorRed)
}

func TestCLIHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewCLIHandler(&buf, slog.LevelDebug).WithGroup("audit")
	logger := slog.New(h)

	logger.Info("started")
	require.Contains(t, buf.String(), "[audit] started")
}
