package replay

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"tq-datafeed/internal/tq"
)

func readKlineTable(path string) ([]tq.KlineRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return parquet.ReadFile[tq.KlineRow](path)
	}
	cols, records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]tq.KlineRow, 0, len(records))
	for i, rec := range records {
		dt, err := cols.nanos(rec, "datetime")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, tq.KlineRow{
			Datetime: dt,
			Open:     cols.float(rec, "open"),
			High:     cols.float(rec, "high"),
			Low:      cols.float(rec, "low"),
			Close:    cols.float(rec, "close"),
			Volume:   cols.float(rec, "volume"),
			OpenOI:   cols.float(rec, "open_oi"),
			CloseOI:  cols.float(rec, "close_oi"),
		})
	}
	return rows, nil
}

func readTickTable(path string) ([]tq.TickRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return parquet.ReadFile[tq.TickRow](path)
	}
	cols, records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]tq.TickRow, 0, len(records))
	for i, rec := range records {
		dt, err := cols.nanos(rec, "datetime")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		row := tq.TickRow{
			Datetime:   dt,
			LastPrice:  cols.float(rec, "last_price"),
			Average:    cols.float(rec, "average"),
			Highest:    cols.float(rec, "highest"),
			Lowest:     cols.float(rec, "lowest"),
			AskPrice1:  cols.float(rec, "ask_price1"),
			AskVolume1: cols.float(rec, "ask_volume1"),
			BidPrice1:  cols.float(rec, "bid_price1"),
			BidVolume1: cols.float(rec, "bid_volume1"),
			Volume:     cols.float(rec, "volume"),
			Amount:     cols.float(rec, "amount"),
		}
		if v, ok := cols.optional(rec, "open_interest"); ok {
			row.OpenInterest = &v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columns maps header names to record positions.
type columns map[string]int

func readCSV(path string) (columns, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return columns{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(columns, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["datetime"]; !ok {
		return nil, nil, fmt.Errorf("missing datetime column")
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return cols, records, nil
}

func (c columns) cell(rec []string, name string) (string, bool) {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return "", false
	}
	return strings.TrimSpace(rec[i]), true
}

func (c columns) nanos(rec []string, name string) (int64, error) {
	s, _ := c.cell(rec, name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, s, err)
	}
	return v, nil
}

// float returns NaN for missing, empty or unparsable cells.
func (c columns) float(rec []string, name string) float64 {
	v, ok := c.optional(rec, name)
	if !ok {
		return math.NaN()
	}
	return v
}

func (c columns) optional(rec []string, name string) (float64, bool) {
	s, ok := c.cell(rec, name)
	if !ok || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
