package saver

import (
	"encoding/csv"
	"os"
	"time"

	"tq-datafeed/internal/model"
)

// CSVSaver saves records as CSV. Datetime is RFC3339 with the record's zone, prices exact decimals.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) SaveBars(bars []model.BarData, path string) error {
	header := []string{"symbol", "exchange", "interval", "datetime", "open", "high", "low", "close", "volume", "turnover", "open_interest"}
	rows := make([][]string, len(bars))
	for i, b := range bars {
		rows[i] = []string{
			b.Symbol,
			string(b.Exchange),
			string(b.Interval),
			b.Datetime.Format(time.RFC3339Nano),
			b.OpenPrice.String(),
			b.HighPrice.String(),
			b.LowPrice.String(),
			b.ClosePrice.String(),
			b.Volume.String(),
			b.Turnover.String(),
			b.OpenInterest.String(),
		}
	}
	return writeCSV(path, header, rows)
}

func (CSVSaver) SaveTicks(ticks []model.TickData, path string) error {
	header := []string{"symbol", "exchange", "datetime", "last_price", "open_price", "high_price", "low_price", "pre_close",
		"volume", "turnover", "open_interest", "limit_up", "limit_down", "bid_price_1", "ask_price_1", "bid_volume_1", "ask_volume_1"}
	rows := make([][]string, len(ticks))
	for i, t := range ticks {
		rows[i] = []string{
			t.Symbol,
			string(t.Exchange),
			t.Datetime.Format(time.RFC3339Nano),
			t.LastPrice.String(),
			t.OpenPrice.String(),
			t.HighPrice.String(),
			t.LowPrice.String(),
			t.PreClose.String(),
			t.Volume.String(),
			t.Turnover.String(),
			t.OpenInterest.String(),
			t.LimitUp.String(),
			t.LimitDown.String(),
			t.BidPrice1.String(),
			t.AskPrice1.String(),
			t.BidVolume1.String(),
			t.AskVolume1.String(),
		}
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}
