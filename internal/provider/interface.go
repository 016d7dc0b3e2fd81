package provider

import (
	"context"

	"tq-datafeed/internal/model"
)

// Datafeed is the abstraction the platform uses to load history from a data vendor.
//
// QueryBarHistory and QueryTickHistory return a non-nil (possibly empty) slice on
// success. A nil slice with an error means no result at all; implementations
// document which errors are recoverable.
type Datafeed interface {
	Name() string
	Init(ctx context.Context) error
	QueryBarHistory(ctx context.Context, req model.HistoryRequest) ([]model.BarData, error)
	QueryTickHistory(ctx context.Context, req model.HistoryRequest) ([]model.TickData, error)
}
