package saver

import (
	"fmt"
	"strings"

	"tq-datafeed/internal/model"
)

// Saver persists one query result (bars or ticks) to a file.
// High-level code (app, download) picks the implementation; the datafeed does not depend on it.
type Saver interface {
	SaveBars(bars []model.BarData, path string) error
	SaveTicks(ticks []model.TickData, path string) error
	Extension() string
}

// NewSaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewSaver(format string) Saver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// FileName returns {symbol}.{exchange}_{interval}_{from}_to_{to}.{ext}
func FileName(req model.HistoryRequest, ext string) string {
	return fmt.Sprintf("%s_%s_%s_to_%s.%s", req.VtSymbol(), req.Interval,
		req.Start.Format("2006-01-02"), req.End.Format("2006-01-02"), ext)
}
