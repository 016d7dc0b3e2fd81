package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tq-datafeed/internal/model"
	"tq-datafeed/internal/provider"
	"tq-datafeed/internal/saver"
	"tq-datafeed/internal/slogx"
)

// JobResult is sent by workers for fan-in
type JobResult struct {
	Ok        bool
	VtSymbol  string
	Interval  model.Interval
	DateRange string
	Reason    string
	Rows      int
	Path      string
}

// Options controls one download run.
type Options struct {
	SaveDir  string
	Workers  int
	LogLevel string
	LogOut   io.Writer // fan-in log destination, default os.Stdout
}

// Summary is the outcome of Run.
type Summary struct {
	RunID   string
	Success int
	Failed  int
	Rows    int
	Results []JobResult
}

// Run executes jobs against feed with opts.Workers workers, saves each result
// under SaveDir/{vt_symbol}/ and writes the run report to SaveDir.
func Run(ctx context.Context, feed provider.Datafeed, s saver.Saver, jobs []model.HistoryRequest, opts Options) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	if len(jobs) == 0 {
		slog.Info("no jobs to download, skip")
		return summary, nil
	}
	if err := os.MkdirAll(opts.SaveDir, 0755); err != nil {
		return summary, fmt.Errorf("create save dir: %w", err)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	out := opts.LogOut
	if out == nil {
		out = os.Stdout
	}

	logs := make(chan string, 2048)
	logger := slogx.NewChanLogger(logs, opts.LogLevel).With("run_id", summary.RunID)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(out, logs)
	}()
	defer func() {
		close(logs)
		logWg.Wait()
	}()

	pending := make(chan model.HistoryRequest, len(jobs))
	for _, j := range jobs {
		pending <- j
	}
	close(pending)

	results := make(chan JobResult, len(jobs))
	var mu sync.Mutex
	var done, rows int

	// Runs before close(logs) above.
	stopHeartbeat := startHeartbeat(ctx, 30*time.Second, len(jobs), &mu, &done, &rows, logger)
	defer stopHeartbeat()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range pending {
				if ctx.Err() != nil {
					results <- JobResult{VtSymbol: job.VtSymbol(), Interval: job.Interval, DateRange: job.DateRange(), Reason: ctx.Err().Error()}
					continue
				}
				r := runJob(ctx, feed, s, opts.SaveDir, job, logger)
				mu.Lock()
				done++
				rows += r.Rows
				mu.Unlock()
				results <- r
			}
		}()
	}
	wg.Wait()
	close(results)

	var successList []string
	var failedList []failedEntry
	for r := range results {
		summary.Results = append(summary.Results, r)
		if r.Ok {
			summary.Success++
			summary.Rows += r.Rows
			successList = appendSuccess(successList, r.VtSymbol)
		} else {
			summary.Failed++
			failedList = append(failedList, failedEntry{VtSymbol: r.VtSymbol, Interval: string(r.Interval), DateRange: r.DateRange, Reason: r.Reason})
		}
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		if summary.Results[i].VtSymbol != summary.Results[j].VtSymbol {
			return summary.Results[i].VtSymbol < summary.Results[j].VtSymbol
		}
		return summary.Results[i].Interval < summary.Results[j].Interval
	})

	logger.Info("summary", "rows", summary.Rows, "success", summary.Success, "failed", summary.Failed)
	if len(failedList) > 0 {
		logger.Info("summary failed", "count", len(failedList), "reasons", joinFailedReasons(failedList))
	}
	if err := writeRunReport(opts.SaveDir, summary.RunID, successList, failedList); err != nil {
		return summary, fmt.Errorf("write run report: %w", err)
	}
	return summary, nil
}

// runJob queries one request (bars or ticks by interval) and saves it.
func runJob(ctx context.Context, feed provider.Datafeed, s saver.Saver, saveDir string, job model.HistoryRequest, logger *slog.Logger) JobResult {
	res := JobResult{VtSymbol: job.VtSymbol(), Interval: job.Interval, DateRange: job.DateRange()}
	fail := func(reason string) JobResult {
		res.Reason = reason
		logger.Error("download fail", "symbol", res.VtSymbol, "interval", job.Interval, "date_range", res.DateRange, "reason", reason)
		return res
	}

	dir := filepath.Join(saveDir, job.VtSymbol())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fail(err.Error())
	}
	path := filepath.Join(dir, saver.FileName(job, s.Extension()))

	if job.Interval == model.Tick {
		ticks, err := feed.QueryTickHistory(ctx, job)
		if err != nil {
			return fail(err.Error())
		}
		if len(ticks) == 0 {
			return fail("no data")
		}
		if err := s.SaveTicks(ticks, path); err != nil {
			return fail(fmt.Sprintf("save %s: %v", path, err))
		}
		res.Rows = len(ticks)
	} else {
		bars, err := feed.QueryBarHistory(ctx, job)
		if err != nil {
			return fail(err.Error())
		}
		if len(bars) == 0 {
			return fail("no data")
		}
		if err := s.SaveBars(bars, path); err != nil {
			return fail(fmt.Sprintf("save %s: %v", path, err))
		}
		res.Rows = len(bars)
	}
	res.Ok = true
	res.Path = path
	logger.Info("download ok", "symbol", res.VtSymbol, "interval", job.Interval, "date_range", res.DateRange, "rows", res.Rows, "path", path)
	return res
}
