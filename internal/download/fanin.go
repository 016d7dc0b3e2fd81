package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

func runLogWriter(w io.Writer, lines <-chan string) {
	for s := range lines {
		fmt.Fprintln(w, s)
	}
}

// startHeartbeat logs progress every interval until the returned stop is called.
// stop returns once the heartbeat goroutine has exited, so the log channel can
// be closed after it.
func startHeartbeat(ctx context.Context, interval time.Duration, totalJobs int, mu *sync.Mutex, done, rows *int, logger *slog.Logger) (stop func()) {
	hbCtx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		runHeartbeat(hbCtx, interval, totalJobs, mu, done, rows, logger)
	}()
	return func() {
		cancel()
		<-exited
	}
}

func runHeartbeat(ctx context.Context, interval time.Duration, totalJobs int, mu *sync.Mutex, done, rows *int, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mu.Lock()
			d, r := *done, *rows
			mu.Unlock()
			logger.Info("heartbeat", "done", d, "total", totalJobs, "rows", r)
		}
	}
}
