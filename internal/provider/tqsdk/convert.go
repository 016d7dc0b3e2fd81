package tqsdk

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"tq-datafeed/internal/model"
	"tq-datafeed/internal/tq"
)

// Vendor timestamps read as naive UTC are 8 hours behind China wall clock.
const chinaOffset = 8 * time.Hour

var (
	limitUpSentinel   = decimal.NewFromInt(9999999)
	limitDownSentinel = decimal.Zero
)

// intervalDurations maps intervals to the vendor sampling period in seconds.
var intervalDurations = map[model.Interval]int64{
	model.Minute: 60,
	model.Hour:   60 * 60,
	model.Daily:  60 * 60 * 24,
	model.Tick:   0,
}

// DurationSeconds returns the vendor sampling period for interval.
func DurationSeconds(interval model.Interval) (int64, error) {
	d, ok := intervalDurations[interval]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedInterval, interval)
	}
	return d, nil
}

// chinaTime reads raw epoch ns as a naive UTC wall clock, adds 8h and attaches China time.
func chinaTime(raw int64) time.Time {
	wall := time.Unix(0, raw).UTC().Add(chinaOffset)
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), model.ChinaTZ)
}

// dec converts a vendor float. NaN and Inf become zero.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func barFromRow(req model.HistoryRequest, row tq.KlineRow) (model.BarData, bool) {
	if math.IsNaN(row.Close) {
		return model.BarData{}, false
	}
	return model.BarData{
		Symbol:       req.Symbol,
		Exchange:     req.Exchange,
		Interval:     req.Interval,
		Datetime:     chinaTime(row.Datetime),
		OpenPrice:    dec(row.Open),
		HighPrice:    dec(row.High),
		LowPrice:     dec(row.Low),
		ClosePrice:   dec(row.Close),
		Volume:       dec(row.Volume),
		OpenInterest: dec(row.OpenOI),
		GatewayName:  GatewayName,
	}, true
}

func tickFromRow(req model.HistoryRequest, row tq.TickRow) (model.TickData, bool) {
	if math.IsNaN(row.LastPrice) {
		return model.TickData{}, false
	}
	openInterest := decimal.Zero
	if row.OpenInterest != nil {
		openInterest = dec(*row.OpenInterest)
	}
	return model.TickData{
		Symbol:       req.Symbol,
		Exchange:     req.Exchange,
		Datetime:     chinaTime(row.Datetime),
		OpenPrice:    decimal.Zero, // not in the tick series
		HighPrice:    dec(row.Highest),
		LowPrice:     dec(row.Lowest),
		PreClose:     decimal.Zero,
		LastPrice:    dec(row.LastPrice),
		Volume:       dec(row.Volume),
		Turnover:     dec(row.Amount),
		OpenInterest: openInterest,
		LimitUp:      limitUpSentinel,
		LimitDown:    limitDownSentinel,
		BidPrice1:    dec(row.BidPrice1),
		AskPrice1:    dec(row.AskPrice1),
		BidVolume1:   dec(row.BidVolume1),
		AskVolume1:   dec(row.AskVolume1),
		GatewayName:  GatewayName,
	}, true
}
