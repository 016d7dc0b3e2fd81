package download

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tq-datafeed/internal/model"
)

type jobFile struct {
	Jobs []model.HistoryRequest `yaml:"jobs"`
}

// LoadJobs reads history requests from a YAML file:
//
//	jobs:
//	  - {symbol: rb2405, exchange: SHFE, interval: 1m, start: 2024-01-02, end: 2024-01-05}
//
// Dates are read as China calendar dates.
func LoadJobs(path string) ([]model.HistoryRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file %s: %w", path, err)
	}
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse jobs file: %w", err)
	}
	for i := range f.Jobs {
		f.Jobs[i].Start = chinaDate(f.Jobs[i].Start)
		f.Jobs[i].End = chinaDate(f.Jobs[i].End)
		if err := f.Jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
	}
	return f.Jobs, nil
}

func chinaDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, model.ChinaTZ)
}
