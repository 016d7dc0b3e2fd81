package saver

import "tq-datafeed/internal/model"

// barRecord is the flat row written to parquet. Datetime is unix ms.
type barRecord struct {
	Symbol       string  `parquet:"symbol"`
	Exchange     string  `parquet:"exchange"`
	Interval     string  `parquet:"interval"`
	Datetime     int64   `parquet:"datetime"`
	Open         float64 `parquet:"open"`
	High         float64 `parquet:"high"`
	Low          float64 `parquet:"low"`
	Close        float64 `parquet:"close"`
	Volume       float64 `parquet:"volume"`
	Turnover     float64 `parquet:"turnover"`
	OpenInterest float64 `parquet:"open_interest"`
}

type tickRecord struct {
	Symbol       string  `parquet:"symbol"`
	Exchange     string  `parquet:"exchange"`
	Datetime     int64   `parquet:"datetime"`
	LastPrice    float64 `parquet:"last_price"`
	OpenPrice    float64 `parquet:"open_price"`
	HighPrice    float64 `parquet:"high_price"`
	LowPrice     float64 `parquet:"low_price"`
	PreClose     float64 `parquet:"pre_close"`
	Volume       float64 `parquet:"volume"`
	Turnover     float64 `parquet:"turnover"`
	OpenInterest float64 `parquet:"open_interest"`
	LimitUp      float64 `parquet:"limit_up"`
	LimitDown    float64 `parquet:"limit_down"`
	BidPrice1    float64 `parquet:"bid_price_1"`
	AskPrice1    float64 `parquet:"ask_price_1"`
	BidVolume1   float64 `parquet:"bid_volume_1"`
	AskVolume1   float64 `parquet:"ask_volume_1"`
}

func toBarRecord(b model.BarData) barRecord {
	return barRecord{
		Symbol:       b.Symbol,
		Exchange:     string(b.Exchange),
		Interval:     string(b.Interval),
		Datetime:     b.Datetime.UnixMilli(),
		Open:         b.OpenPrice.InexactFloat64(),
		High:         b.HighPrice.InexactFloat64(),
		Low:          b.LowPrice.InexactFloat64(),
		Close:        b.ClosePrice.InexactFloat64(),
		Volume:       b.Volume.InexactFloat64(),
		Turnover:     b.Turnover.InexactFloat64(),
		OpenInterest: b.OpenInterest.InexactFloat64(),
	}
}

func toTickRecord(t model.TickData) tickRecord {
	return tickRecord{
		Symbol:       t.Symbol,
		Exchange:     string(t.Exchange),
		Datetime:     t.Datetime.UnixMilli(),
		LastPrice:    t.LastPrice.InexactFloat64(),
		OpenPrice:    t.OpenPrice.InexactFloat64(),
		HighPrice:    t.HighPrice.InexactFloat64(),
		LowPrice:     t.LowPrice.InexactFloat64(),
		PreClose:     t.PreClose.InexactFloat64(),
		Volume:       t.Volume.InexactFloat64(),
		Turnover:     t.Turnover.InexactFloat64(),
		OpenInterest: t.OpenInterest.InexactFloat64(),
		LimitUp:      t.LimitUp.InexactFloat64(),
		LimitDown:    t.LimitDown.InexactFloat64(),
		BidPrice1:    t.BidPrice1.InexactFloat64(),
		AskPrice1:    t.AskPrice1.InexactFloat64(),
		BidVolume1:   t.BidVolume1.InexactFloat64(),
		AskVolume1:   t.AskVolume1.InexactFloat64(),
	}
}
