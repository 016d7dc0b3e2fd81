// Package replay serves TQ data series from exported files on disk.
//
// Layout, one directory per vendor symbol:
//
//	<dir>/SHFE.rb2405/kline_60.parquet   (or .csv)
//	<dir>/SHFE.rb2405/tick.parquet       (or .csv)
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tq-datafeed/internal/tq"
)

var errClosed = errors.New("replay: session closed")

// Session is a tq.Session reading tables from Dir.
type Session struct {
	Dir string

	mu     sync.Mutex
	closed bool
}

// NewDialer returns a tq.Dialer whose sessions read from dir.
// Empty credentials are rejected with tq.ErrAuth, like the live service.
func NewDialer(dir string) tq.Dialer {
	return func(ctx context.Context, auth tq.Auth) (tq.Session, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if auth.Username == "" || auth.Password == "" {
			return nil, fmt.Errorf("%w: username and password required", tq.ErrAuth)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("replay dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("replay dir %s is not a directory", dir)
		}
		return &Session{Dir: dir}, nil
	}
}

// KlineDataSeries returns kline rows in [start, end).
func (s *Session) KlineDataSeries(ctx context.Context, symbol string, durationSeconds int64, start, end time.Time) ([]tq.KlineRow, error) {
	symbolDir, err := s.symbolDir(ctx, symbol)
	if err != nil {
		return nil, err
	}
	path, ok := findTable(symbolDir, fmt.Sprintf("kline_%d", durationSeconds))
	if !ok {
		return nil, nil
	}
	rows, err := readKlineTable(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	from, to := start.UnixNano(), end.UnixNano()
	out := make([]tq.KlineRow, 0, len(rows))
	for _, r := range rows {
		if r.Datetime >= from && r.Datetime < to {
			out = append(out, r)
		}
	}
	return out, nil
}

// TickDataSeries returns tick rows in [start, end).
func (s *Session) TickDataSeries(ctx context.Context, symbol string, start, end time.Time) ([]tq.TickRow, error) {
	symbolDir, err := s.symbolDir(ctx, symbol)
	if err != nil {
		return nil, err
	}
	path, ok := findTable(symbolDir, "tick")
	if !ok {
		return nil, nil
	}
	rows, err := readTickTable(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	from, to := start.UnixNano(), end.UnixNano()
	out := make([]tq.TickRow, 0, len(rows))
	for _, r := range rows {
		if r.Datetime >= from && r.Datetime < to {
			out = append(out, r)
		}
	}
	return out, nil
}

// Close marks the session closed. Calls after Close fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) symbolDir(ctx context.Context, symbol string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", errClosed
	}
	dir := filepath.Join(s.Dir, symbol)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", tq.ErrNoSuchSymbol, symbol)
		}
		return "", err
	}
	return dir, nil
}

// findTable prefers parquet over csv.
func findTable(dir, name string) (string, bool) {
	for _, ext := range []string{".parquet", ".csv"} {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
