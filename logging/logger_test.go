package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", zap.Int("bubbles", 3))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"bubbles":3`)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "logging: parse level")

	_, err = NewWithWriter(Config{Format: "xml"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "logging: unknown format")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bubbleworm.log")
	cfg := DefaultConfig()
	cfg.File = path

	logger, err := NewWithWriter(cfg, zapcore.AddSync(&bytes.Buffer{}))
	require.NoError(t, err)
	logger.Info("to file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
