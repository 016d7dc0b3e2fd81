package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tq-datafeed/internal/app"
	"tq-datafeed/internal/download"
	"tq-datafeed/internal/model"
	"tq-datafeed/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	symbol := flag.String("symbol", "", "contract symbol, e.g. rb2405")
	exchange := flag.String("exchange", "", "exchange code, e.g. SHFE")
	interval := flag.String("interval", "1m", "1m | 1h | d | tick")
	start := flag.String("start", "", "start date YYYY-MM-DD (China time)")
	end := flag.String("end", "", "end date YYYY-MM-DD, inclusive (default: start)")
	jobsFile := flag.String("jobs", "", "YAML file with a list of requests; overrides -symbol")
	flag.Parse()

	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	jobs, err := loadJobs(*jobsFile, *symbol, *exchange, *interval, *start, *end)
	if err != nil {
		slog.Error("failed to get jobs", "error", err)
		flag.Usage()
		os.Exit(2)
	}
	slog.Info("got jobs", "count", len(jobs))

	summary, err := app.Run(a.Config, a.Feed, a.Saver, jobs)
	if err != nil {
		slog.Error("download failed", "error", err)
		os.Exit(1)
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func loadJobs(jobsFile, symbol, exchange, interval, start, end string) ([]model.HistoryRequest, error) {
	if jobsFile != "" {
		return download.LoadJobs(jobsFile)
	}
	ex, err := model.ParseExchange(exchange)
	if err != nil {
		return nil, err
	}
	iv, err := model.ParseInterval(interval)
	if err != nil {
		return nil, err
	}
	if start == "" {
		return nil, fmt.Errorf("-start is required")
	}
	if end == "" {
		end = start
	}
	from, err := time.ParseInLocation(time.DateOnly, start, model.ChinaTZ)
	if err != nil {
		return nil, fmt.Errorf("parse -start: %w", err)
	}
	to, err := time.ParseInLocation(time.DateOnly, end, model.ChinaTZ)
	if err != nil {
		return nil, fmt.Errorf("parse -end: %w", err)
	}
	req := model.HistoryRequest{Symbol: symbol, Exchange: ex, Interval: iv, Start: from, End: to}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []model.HistoryRequest{req}, nil
}
