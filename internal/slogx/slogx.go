package slogx

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ChanWriter buffers writes and sends complete lines to channel.
// Used with slog.TextHandler for fan-in logging.
type ChanWriter struct {
	Ch  chan<- string
	Buf []byte
}

func (w *ChanWriter) Write(p []byte) (n int, err error) {
	w.Buf = append(w.Buf, p...)
	for {
		i := bytes.IndexByte(w.Buf, '\n')
		if i < 0 {
			break
		}
		line := string(w.Buf[:i])
		w.Buf = w.Buf[i+1:]
		select {
		case w.Ch <- line:
		default:
			// channel full, drop
		}
	}
	return len(p), nil
}

// NewChanLogger creates a slog.Logger that writes to the channel in text format.
func NewChanLogger(ch chan<- string, level string) *slog.Logger {
	w := &ChanWriter{Ch: ch}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel converts string (debug|info|warn|error) to slog.Level. Unknown → info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewDefault creates a logger writing to stderr with the given level string.
func NewDefault(level string) *slog.Logger {
	return newText(os.Stderr, level)
}

// NewFile creates a logger writing to stderr and to a rotated file at path.
// Files rotate at 50MB and are kept for 14 days.
func NewFile(level, path string) *slog.Logger {
	rotator := &lumberjack.Logger{
		Filename: path,
		MaxSize:  50,
		MaxAge:   14,
		Compress: true,
	}
	return newText(io.MultiWriter(os.Stderr, rotator), level)
}

// New picks NewFile when path is set, NewDefault otherwise.
func New(level, path string) *slog.Logger {
	if path == "" {
		return NewDefault(level)
	}
	return NewFile(level, path)
}

func newText(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}
