package slogx

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestChanLoggerSendsLines(t *testing.T) {
	ch := make(chan string, 4)
	logger := NewChanLogger(ch, "info")
	logger.Info("crawl ok", "symbol", "rb2405.SHFE")
	logger.Debug("hidden")

	require.Len(t, ch, 1)
	line := <-ch
	assert.Contains(t, line, "msg=\"crawl ok\"")
	assert.Contains(t, line, "symbol=rb2405.SHFE")
}

func TestChanWriterDropsWhenFull(t *testing.T) {
	ch := make(chan string, 1)
	w := &ChanWriter{Ch: ch}
	n, err := w.Write([]byte("a\nb\npartial"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "a", <-ch)
	assert.Equal(t, "partial", string(w.Buf))
}

func TestNewFileWritesLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tq.log")
	logger := New("warn", path)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.Warn("session close failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session close failed")
}
