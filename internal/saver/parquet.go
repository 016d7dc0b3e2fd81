package saver

import (
	"github.com/parquet-go/parquet-go"

	"tq-datafeed/internal/model"
)

// ParquetSaver saves flat float64 rows as Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) SaveBars(bars []model.BarData, path string) error {
	rows := make([]barRecord, len(bars))
	for i, b := range bars {
		rows[i] = toBarRecord(b)
	}
	return parquet.WriteFile(path, rows)
}

func (ParquetSaver) SaveTicks(ticks []model.TickData, path string) error {
	rows := make([]tickRecord, len(ticks))
	for i, t := range ticks {
		rows[i] = toTickRecord(t)
	}
	return parquet.WriteFile(path, rows)
}
