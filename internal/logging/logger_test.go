package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("build failed", "artifact", "cube", "error", errors.New("exit 1"))
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `err="exit 1"`)
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "hidden")
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFor(true))
	assert.Equal(t, slog.LevelInfo, LevelFor(false))
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { NewNop().Error("ignored") })
}
