package saver

import (
	"encoding/json"
	"os"

	"tq-datafeed/internal/model"
)

// JSONSaver saves records as an indented JSON array; decimals stay exact strings.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) SaveBars(bars []model.BarData, path string) error {
	return writeJSON(path, bars)
}

func (JSONSaver) SaveTicks(ticks []model.TickData, path string) error {
	return writeJSON(path, ticks)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
