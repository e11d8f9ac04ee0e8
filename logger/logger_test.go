package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewDisabledIsNop(t *testing.T) {
	l, err := New(Config{Enabled: false, Level: "debug"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewEnabledRespectsThreshold(t *testing.T) {
	l, err := New(Config{Enabled: true, Level: "info"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audiodesk.log")

	l, err := New(Config{Enabled: true, Level: "info", OutputPath: path})
	require.NoError(t, err)

	l.Info("backend started", zap.Int("port", 1430))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"backend started"`)
	assert.Contains(t, string(data), `"port":1430`)
}

func TestSetNilFallsBackToNop(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	Set(nil)
	require.NotNil(t, L())
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}
