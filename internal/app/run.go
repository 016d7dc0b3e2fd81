package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tq-datafeed/internal/download"
	"tq-datafeed/internal/model"
	"tq-datafeed/internal/provider"
	"tq-datafeed/internal/saver"
)

// Run checks the datafeed, downloads jobs and saves them under cfg.SaveBaseDir().
// SIGINT/SIGTERM cancel jobs that have not started.
func Run(cfg *Config, feed provider.Datafeed, s saver.Saver, jobs []model.HistoryRequest) (download.Summary, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := feed.Init(ctx); err != nil {
		return download.Summary{}, fmt.Errorf("init datafeed %s: %w", feed.Name(), err)
	}
	slog.Info("download start", "datafeed", feed.Name(), "jobs", len(jobs), "workers", cfg.Workers,
		"dir", cfg.SaveBaseDir(), "format", s.Extension())

	summary, err := download.Run(ctx, feed, s, jobs, download.Options{
		SaveDir:  cfg.SaveBaseDir(),
		Workers:  cfg.Workers,
		LogLevel: cfg.LogLevel,
	})
	if err != nil {
		return summary, err
	}
	slog.Info("download done", "run_id", summary.RunID, "success", summary.Success, "failed", summary.Failed, "rows", summary.Rows)
	return summary, nil
}
