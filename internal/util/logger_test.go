package util

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) Sync() error { return nil }

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestMetricsLogger_NotInitialized(t *testing.T) {
	var l MetricsLogger
	assert.ErrorIs(t, l.LogEvent("hello"), ErrLogNotInitialized)
	assert.ErrorIs(t, l.LogFields(LOG_LEVEL_INFO, "hello"), ErrLogNotInitialized)

	l.DeInit()
}

func TestMetricsLogger_LevelsAndFields(t *testing.T) {
	out := &syncBuffer{}

	var l MetricsLogger
	require.NoError(t, l.Init(LoggerOptions{Level: LOG_LEVEL_INFO, Writer: out}))

	assert.NoError(t, l.LogEvent(LOG_LEVEL_INFO, "Service started", "variant", "ticker"))
	assert.NoError(t, l.LogEvent(LOG_LEVEL_DEBUG, "dropped below info"))
	assert.NoError(t, l.LogEvent(LOG_LEVEL_WARN, "slow", 3))
	assert.NoError(t, l.LogFields(LOG_LEVEL_ERROR, "request failed", zap.String("path", "/metrics")))
	l.DeInit()

	logged := out.String()
	assert.Contains(t, logged, "INFO\tService started variant ticker")
	assert.NotContains(t, logged, "dropped below info")
	assert.Contains(t, logged, "WARN\tslow 3")
	assert.Contains(t, logged, "ERROR\trequest failed")
	assert.Contains(t, logged, `"path": "/metrics"`)

	assert.ErrorIs(t, l.LogEvent("after close"), ErrLogNotInitialized)
}

func TestMetricsLogger_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	var l MetricsLogger
	require.NoError(t, l.Init(LoggerOptions{Level: LOG_LEVEL_DEBUG, Folder: dir, File: "webService.log"}))
	require.NoError(t, l.LogEvent("written to file"))
	l.DeInit()

	data, err := os.ReadFile(filepath.Join(dir, "webService.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LOG_LEVEL_ERROR, ParseLogLevel("ERROR"))
	assert.Equal(t, LOG_LEVEL_WARN, ParseLogLevel("warn"))
	assert.Equal(t, LOG_LEVEL_DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, LOG_LEVEL_INFO, ParseLogLevel("anything"))

	assert.Equal(t, zapcore.DebugLevel, ZapLevel(LOG_LEVEL_DEBUG))
	assert.Equal(t, zapcore.InfoLevel, ZapLevel(42))
}
