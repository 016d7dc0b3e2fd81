package model

import (
	"fmt"
	"time"
)

// HistoryRequest describes one history query. Start and End are inclusive dates;
// datafeeds pad End so the whole last session is returned.
type HistoryRequest struct {
	Symbol   string    `yaml:"symbol"`
	Exchange Exchange  `yaml:"exchange"`
	Interval Interval  `yaml:"interval"`
	Start    time.Time `yaml:"start"`
	End      time.Time `yaml:"end"`
}

// VtSymbol returns symbol.exchange
func (r HistoryRequest) VtSymbol() string {
	return r.Symbol + "." + string(r.Exchange)
}

// DateRange formats the request range as 2006-01-02..2006-01-02.
func (r HistoryRequest) DateRange() string {
	return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
}

// Validate checks required fields and range order.
func (r HistoryRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("symbol is empty")
	}
	if r.Exchange == "" {
		return fmt.Errorf("exchange is empty")
	}
	if r.Interval == "" {
		return fmt.Errorf("interval is empty")
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("end %s before start %s", r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return nil
}
