package tq

// KlineRow is one row of a kline data series. Undefined values are NaN.
type KlineRow struct {
	Datetime int64   `json:"datetime" parquet:"datetime"` // epoch ns
	Open     float64 `json:"open" parquet:"open"`
	High     float64 `json:"high" parquet:"high"`
	Low      float64 `json:"low" parquet:"low"`
	Close    float64 `json:"close" parquet:"close"`
	Volume   float64 `json:"volume" parquet:"volume"`
	OpenOI   float64 `json:"open_oi" parquet:"open_oi"`
	CloseOI  float64 `json:"close_oi" parquet:"close_oi"`
}

// TickRow is one row of a tick data series. OpenInterest is nil when the
// series has no open_interest column (e.g. spot instruments).
type TickRow struct {
	Datetime     int64    `json:"datetime" parquet:"datetime"` // epoch ns
	LastPrice    float64  `json:"last_price" parquet:"last_price"`
	Average      float64  `json:"average" parquet:"average"`
	Highest      float64  `json:"highest" parquet:"highest"`
	Lowest       float64  `json:"lowest" parquet:"lowest"`
	AskPrice1    float64  `json:"ask_price1" parquet:"ask_price1"`
	AskVolume1   float64  `json:"ask_volume1" parquet:"ask_volume1"`
	BidPrice1    float64  `json:"bid_price1" parquet:"bid_price1"`
	BidVolume1   float64  `json:"bid_volume1" parquet:"bid_volume1"`
	Volume       float64  `json:"volume" parquet:"volume"`
	Amount       float64  `json:"amount" parquet:"amount"`
	OpenInterest *float64 `json:"open_interest,omitempty" parquet:"open_interest,optional"`
}
