package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(Options{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = New(Options{Level: "garbage"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Options{Level: "debug", Name: "placesctl", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.Equal(t, "placesctl", l.Name())
}

func TestNew_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	l, err := New(Options{Name: "api", Level: "info", Output: path})
	require.NoError(t, err)
	l.Info("Starting Traveller Backend")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger":"api"`)
	assert.Contains(t, string(data), `"msg":"Starting Traveller Backend"`)
}

func TestLeveled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLeveled(zap.New(core))

	l.Warn("retrying request", "url", "http://example.test", "attempt", 2)
	l.Debug("performing request", "method", "GET")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "retrying request", entry.Message)
	assert.Equal(t, int64(2), entry.ContextMap()["attempt"])
}
