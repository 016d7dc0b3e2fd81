package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarData represents one OHLCV bar for a symbol at a fixed interval.
// Shared by provider, saver and download.
type BarData struct {
	Symbol       string          `json:"symbol"`
	Exchange     Exchange        `json:"exchange"`
	Interval     Interval        `json:"interval"`
	Datetime     time.Time       `json:"datetime"` // Bar start, China time
	OpenPrice    decimal.Decimal `json:"open_price"`
	HighPrice    decimal.Decimal `json:"high_price"`
	LowPrice     decimal.Decimal `json:"low_price"`
	ClosePrice   decimal.Decimal `json:"close_price"`
	Volume       decimal.Decimal `json:"volume"`
	Turnover     decimal.Decimal `json:"turnover"`
	OpenInterest decimal.Decimal `json:"open_interest"`
	GatewayName  string          `json:"gateway_name"`
}

// VtSymbol returns symbol.exchange
func (b BarData) VtSymbol() string {
	return b.Symbol + "." + string(b.Exchange)
}
