package tqsdk

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tq-datafeed/internal/model"
	"tq-datafeed/internal/setting"
	"tq-datafeed/internal/tq"
)

// fakeSession records the last query and returns canned rows.
type fakeSession struct {
	klines   []tq.KlineRow
	ticks    []tq.TickRow
	queryErr error
	panicMsg string

	symbol   string
	duration int64
	start    time.Time
	end      time.Time
	closed   int
}

func (s *fakeSession) KlineDataSeries(_ context.Context, symbol string, durationSeconds int64, start, end time.Time) ([]tq.KlineRow, error) {
	s.symbol, s.duration, s.start, s.end = symbol, durationSeconds, start, end
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.klines, s.queryErr
}

func (s *fakeSession) TickDataSeries(_ context.Context, symbol string, start, end time.Time) ([]tq.TickRow, error) {
	s.symbol, s.start, s.end = symbol, start, end
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.ticks, s.queryErr
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

var testSettings = setting.Store{
	setting.KeyUsername: "alice",
	setting.KeyPassword: "secret",
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDatafeed(sess *fakeSession, out io.Writer) (*Datafeed, *tq.Auth) {
	var got tq.Auth
	dial := func(_ context.Context, auth tq.Auth) (tq.Session, error) {
		got = auth
		return sess, nil
	}
	return New(testSettings, dial, WithOutput(out), WithLogger(quietLogger())), &got
}

func testRequest(interval model.Interval) model.HistoryRequest {
	return model.HistoryRequest{
		Symbol:   "rb2405",
		Exchange: model.SHFE,
		Interval: interval,
		Start:    time.Date(2024, 1, 2, 0, 0, 0, 0, model.ChinaTZ),
		End:      time.Date(2024, 1, 5, 0, 0, 0, 0, model.ChinaTZ),
	}
}

func TestDurationSeconds(t *testing.T) {
	cases := map[model.Interval]int64{
		model.Minute: 60,
		model.Hour:   3600,
		model.Daily:  86400,
		model.Tick:   0,
	}
	for interval, want := range cases {
		got, err := DurationSeconds(interval)
		require.NoError(t, err)
		assert.Equal(t, want, got, interval)
	}

	_, err := DurationSeconds(model.Interval("5m"))
	assert.ErrorIs(t, err, ErrUnsupportedInterval)
}

func TestEmptySeriesReturnsEmptySlice(t *testing.T) {
	var out bytes.Buffer
	sess := &fakeSession{}
	df, _ := newTestDatafeed(sess, &out)

	bars, err := df.QueryBarHistory(context.Background(), testRequest(model.Minute))
	require.NoError(t, err)
	assert.NotNil(t, bars)
	assert.Empty(t, bars)

	ticks, err := df.QueryTickHistory(context.Background(), testRequest(model.Tick))
	require.NoError(t, err)
	assert.NotNil(t, ticks)
	assert.Empty(t, ticks)

	assert.Equal(t, 2, sess.closed)
	assert.Empty(t, out.String())
}

func TestSessionSetupFailure(t *testing.T) {
	var out bytes.Buffer
	dial := func(context.Context, tq.Auth) (tq.Session, error) {
		return nil, errors.New("connect openmd: connection refused")
	}
	df := New(testSettings, dial, WithOutput(&out), WithLogger(quietLogger()))

	bars, err := df.QueryBarHistory(context.Background(), testRequest(model.Minute))
	assert.Nil(t, bars)
	assert.ErrorIs(t, err, ErrSessionSetup)
	assert.Contains(t, out.String(), "connection refused")

	out.Reset()
	ticks, err := df.QueryTickHistory(context.Background(), testRequest(model.Tick))
	assert.Nil(t, ticks)
	assert.ErrorIs(t, err, ErrSessionSetup)
	assert.NotEmpty(t, out.String())
}

func TestSessionSetupFailureKeepsCause(t *testing.T) {
	var out bytes.Buffer
	dial := func(context.Context, tq.Auth) (tq.Session, error) {
		return nil, tq.ErrAuth
	}
	df := New(testSettings, dial, WithOutput(&out), WithLogger(quietLogger()))

	err := df.Init(context.Background())
	assert.ErrorIs(t, err, ErrSessionSetup)
	assert.ErrorIs(t, err, tq.ErrAuth)
	assert.Contains(t, out.String(), "authentication failed")
}

func TestCredentialsFromSettings(t *testing.T) {
	sess := &fakeSession{}
	df, auth := newTestDatafeed(sess, io.Discard)

	require.NoError(t, df.Init(context.Background()))
	assert.Equal(t, tq.Auth{Username: "alice", Password: "secret"}, *auth)
	assert.Equal(t, 1, sess.closed)
	assert.Equal(t, "TQ", df.Name())
}

func TestBarQueryArguments(t *testing.T) {
	sess := &fakeSession{}
	df, _ := newTestDatafeed(sess, io.Discard)
	req := testRequest(model.Hour)

	_, err := df.QueryBarHistory(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "SHFE.rb2405", sess.symbol)
	assert.Equal(t, int64(3600), sess.duration)
	assert.True(t, sess.start.Equal(req.Start))
	assert.True(t, sess.end.Equal(req.End.Add(24*time.Hour)))
}

func TestTickQueryArguments(t *testing.T) {
	sess := &fakeSession{}
	df, _ := newTestDatafeed(sess, io.Discard)
	req := testRequest(model.Tick)

	_, err := df.QueryTickHistory(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "SHFE.rb2405", sess.symbol)
	assert.True(t, time.Date(2024, 1, 6, 0, 0, 0, 0, model.ChinaTZ).Equal(sess.end))
}

func TestBarRowMapping(t *testing.T) {
	// 2024-01-02 01:00:00 UTC
	raw := int64(1704157200) * int64(time.Second)
	sess := &fakeSession{klines: []tq.KlineRow{
		{Datetime: raw, Open: 3900, High: 3910, Low: 3890, Close: 3905, Volume: 120, OpenOI: 1000, CloseOI: 1010},
		{Datetime: raw + int64(time.Minute), Open: math.NaN(), High: math.NaN(), Low: math.NaN(), Close: math.NaN()},
	}}
	df, _ := newTestDatafeed(sess, io.Discard)

	bars, err := df.QueryBarHistory(context.Background(), testRequest(model.Minute))
	require.NoError(t, err)
	require.Len(t, bars, 1)

	bar := bars[0]
	assert.Equal(t, "rb2405", bar.Symbol)
	assert.Equal(t, model.SHFE, bar.Exchange)
	assert.Equal(t, model.Minute, bar.Interval)
	assert.Equal(t, model.ChinaTZ, bar.Datetime.Location())
	assert.True(t, time.Date(2024, 1, 2, 9, 0, 0, 0, model.ChinaTZ).Equal(bar.Datetime))
	assert.True(t, decimal.NewFromInt(3905).Equal(bar.ClosePrice))
	assert.True(t, decimal.NewFromInt(1000).Equal(bar.OpenInterest))
	assert.Equal(t, "TQ", bar.GatewayName)
}

func TestChinaTimeAddsEightHours(t *testing.T) {
	raw := int64(1501074872000000000)
	got := chinaTime(raw)
	naive := time.Unix(0, raw).UTC().Add(8 * time.Hour)

	assert.Equal(t, model.ChinaTZ, got.Location())
	assert.Equal(t, naive.Year(), got.Year())
	assert.Equal(t, naive.YearDay(), got.YearDay())
	assert.Equal(t, naive.Hour(), got.Hour())
	assert.Equal(t, naive.Minute(), got.Minute())
	assert.Equal(t, naive.Second(), got.Second())
	assert.Equal(t, 21, got.Hour())
}

func TestTickRowMapping(t *testing.T) {
	raw := int64(1501074872000000000)
	oi := 1941.0
	sess := &fakeSession{ticks: []tq.TickRow{
		{Datetime: raw, LastPrice: math.NaN(), BidPrice1: 3881, AskPrice1: 3886},
		{Datetime: raw + 500*int64(time.Millisecond), LastPrice: 3887, Average: 3820, Highest: 3897, Lowest: 3806,
			AskPrice1: 3886, AskVolume1: 3, BidPrice1: 3881, BidVolume1: 18, Volume: 7823, Amount: 19237841, OpenInterest: &oi},
		{Datetime: raw + int64(time.Second), LastPrice: 3888, Highest: 3897, Lowest: 3806},
	}}
	df, _ := newTestDatafeed(sess, io.Discard)

	ticks, err := df.QueryTickHistory(context.Background(), testRequest(model.Tick))
	require.NoError(t, err)
	require.Len(t, ticks, 2)

	tick := ticks[0]
	assert.True(t, decimal.NewFromInt(3887).Equal(tick.LastPrice))
	assert.True(t, tick.OpenPrice.IsZero())
	assert.True(t, tick.PreClose.IsZero())
	assert.True(t, decimal.NewFromInt(9999999).Equal(tick.LimitUp))
	assert.True(t, tick.LimitDown.IsZero())
	assert.True(t, decimal.NewFromInt(3897).Equal(tick.HighPrice))
	assert.True(t, decimal.NewFromInt(3806).Equal(tick.LowPrice))
	assert.True(t, decimal.NewFromInt(19237841).Equal(tick.Turnover))
	assert.True(t, decimal.NewFromInt(1941).Equal(tick.OpenInterest))
	assert.True(t, decimal.NewFromInt(18).Equal(tick.BidVolume1))
	assert.True(t, decimal.NewFromInt(3).Equal(tick.AskVolume1))
	assert.Equal(t, 500*time.Millisecond, time.Duration(tick.Datetime.Nanosecond()))
	assert.Equal(t, model.ChinaTZ, tick.Datetime.Location())

	assert.True(t, ticks[1].OpenInterest.IsZero())
}

func TestQueryErrorClosesSession(t *testing.T) {
	var out bytes.Buffer
	sess := &fakeSession{queryErr: tq.ErrNoSuchSymbol}
	df, _ := newTestDatafeed(sess, &out)

	bars, err := df.QueryBarHistory(context.Background(), testRequest(model.Daily))
	assert.Nil(t, bars)
	assert.ErrorIs(t, err, tq.ErrNoSuchSymbol)
	assert.NotErrorIs(t, err, ErrSessionSetup)
	assert.Equal(t, 1, sess.closed)
	assert.Empty(t, out.String())

	_, err = df.QueryTickHistory(context.Background(), testRequest(model.Tick))
	assert.ErrorIs(t, err, tq.ErrNoSuchSymbol)
	assert.Equal(t, 2, sess.closed)
}

func TestUnsupportedIntervalClosesSession(t *testing.T) {
	sess := &fakeSession{}
	df, _ := newTestDatafeed(sess, io.Discard)

	_, err := df.QueryBarHistory(context.Background(), testRequest(model.Interval("5m")))
	assert.ErrorIs(t, err, ErrUnsupportedInterval)
	assert.Equal(t, 1, sess.closed)
}

func TestSkippedRowsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	raw := int64(1501074872000000000)
	sess := &fakeSession{
		ticks:  []tq.TickRow{{Datetime: raw, LastPrice: math.NaN(), BidPrice1: 3881}, {Datetime: raw + 1, LastPrice: 3887}},
		klines: []tq.KlineRow{{Datetime: raw, Close: math.NaN()}, {Datetime: raw + 1, Close: 3887}},
	}
	dial := func(context.Context, tq.Auth) (tq.Session, error) { return sess, nil }
	df := New(testSettings, dial, WithOutput(io.Discard),
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))))

	ticks, err := df.QueryTickHistory(context.Background(), testRequest(model.Tick))
	require.NoError(t, err)
	assert.Len(t, ticks, 1)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), `msg="skip tick row without last price"`)
	assert.Contains(t, logs.String(), "symbol=SHFE.rb2405")
	assert.Contains(t, logs.String(), "bid_price1=3881")

	bars, err := df.QueryBarHistory(context.Background(), testRequest(model.Minute))
	require.NoError(t, err)
	assert.Len(t, bars, 1)
	assert.Contains(t, logs.String(), `msg="skip kline row without close price"`)
}

func TestPanicClosesSession(t *testing.T) {
	sess := &fakeSession{panicMsg: "vendor blew up"}
	df, _ := newTestDatafeed(sess, io.Discard)

	assert.PanicsWithValue(t, "vendor blew up", func() {
		_, _ = df.QueryBarHistory(context.Background(), testRequest(model.Minute))
	})
	assert.Equal(t, 1, sess.closed)

	assert.PanicsWithValue(t, "vendor blew up", func() {
		_, _ = df.QueryTickHistory(context.Background(), testRequest(model.Tick))
	})
	assert.Equal(t, 2, sess.closed)
}
