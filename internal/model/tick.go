package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TickData is one market snapshot with level-1 depth.
type TickData struct {
	Symbol       string          `json:"symbol"`
	Exchange     Exchange        `json:"exchange"`
	Datetime     time.Time       `json:"datetime"`
	Name         string          `json:"name,omitempty"`
	Volume       decimal.Decimal `json:"volume"`
	Turnover     decimal.Decimal `json:"turnover"`
	OpenInterest decimal.Decimal `json:"open_interest"`
	LastPrice    decimal.Decimal `json:"last_price"`
	LimitUp      decimal.Decimal `json:"limit_up"`
	LimitDown    decimal.Decimal `json:"limit_down"`
	OpenPrice    decimal.Decimal `json:"open_price"`
	HighPrice    decimal.Decimal `json:"high_price"`
	LowPrice     decimal.Decimal `json:"low_price"`
	PreClose     decimal.Decimal `json:"pre_close"`
	BidPrice1    decimal.Decimal `json:"bid_price_1"`
	AskPrice1    decimal.Decimal `json:"ask_price_1"`
	BidVolume1   decimal.Decimal `json:"bid_volume_1"`
	AskVolume1   decimal.Decimal `json:"ask_volume_1"`
	GatewayName  string          `json:"gateway_name"`
}

func (t TickData) VtSymbol() string {
	return t.Symbol + "." + string(t.Exchange)
}
