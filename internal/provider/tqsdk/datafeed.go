// Package tqsdk implements provider.Datafeed on top of the TqSdk vendor session.
package tqsdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"tq-datafeed/internal/model"
	"tq-datafeed/internal/setting"
	"tq-datafeed/internal/tq"
)

// GatewayName tags every record produced by this datafeed.
const GatewayName = "TQ"

// queryPad extends the vendor end date so the last requested session is complete.
const queryPad = 24 * time.Hour

var (
	// ErrSessionSetup means no vendor session could be opened. The query produced no result.
	ErrSessionSetup = errors.New("tqsdk: vendor session setup failed")
	// ErrUnsupportedInterval means the interval has no vendor duration.
	ErrUnsupportedInterval = errors.New("tqsdk: unsupported interval")
)

// Datafeed adapts TqSdk history queries to model.BarData / model.TickData.
type Datafeed struct {
	username string
	password string
	dial     tq.Dialer
	output   io.Writer
	logger   *slog.Logger
}

// Option configures a Datafeed.
type Option func(*Datafeed)

// WithOutput sets the sink for session setup diagnostics. Default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Datafeed) {
		if w != nil {
			d.output = w
		}
	}
}

// WithLogger sets the structured logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Datafeed) {
		if l != nil {
			d.logger = l
		}
	}
}

// New reads datafeed.username and datafeed.password once from settings.
func New(settings setting.Settings, dial tq.Dialer, opts ...Option) *Datafeed {
	d := &Datafeed{
		username: settings.String(setting.KeyUsername),
		password: settings.String(setting.KeyPassword),
		dial:     dial,
		output:   os.Stdout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the gateway name
func (d *Datafeed) Name() string {
	return GatewayName
}

// Init opens and closes a session to check the credentials.
func (d *Datafeed) Init(ctx context.Context) error {
	sess, err := d.connect(ctx)
	if err != nil {
		return err
	}
	d.closeSession(sess)
	d.logger.Info("tq datafeed ready", "username", d.username)
	return nil
}

// QueryBarHistory loads bars for req.Interval over [req.Start, req.End+1d).
// Kline rows without a close price are skipped and logged, so the result can
// hold fewer bars than the vendor returned rows.
//
// Errors wrapping ErrSessionSetup were already written to the output sink.
// Any other error comes from the vendor query and is not recovered.
func (d *Datafeed) QueryBarHistory(ctx context.Context, req model.HistoryRequest) ([]model.BarData, error) {
	sess, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer d.closeSession(sess)

	duration, err := DurationSeconds(req.Interval)
	if err != nil {
		return nil, err
	}
	symbol := tq.Symbol(string(req.Exchange), req.Symbol)
	rows, err := sess.KlineDataSeries(ctx, symbol, duration, req.Start, req.End.Add(queryPad))
	if err != nil {
		return nil, fmt.Errorf("kline data series %s: %w", symbol, err)
	}

	bars := make([]model.BarData, 0, len(rows))
	for _, row := range rows {
		bar, ok := barFromRow(req, row)
		if !ok {
			d.logger.Warn("skip kline row without close price", "symbol", symbol, "datetime", row.Datetime)
			continue
		}
		bars = append(bars, bar)
	}
	d.logger.Debug("bar history loaded", "symbol", symbol, "interval", req.Interval, "rows", len(rows), "bars", len(bars))
	return bars, nil
}

// QueryTickHistory loads ticks over [req.Start, req.End+1d). Rows without a last
// price are skipped. Error semantics match QueryBarHistory.
func (d *Datafeed) QueryTickHistory(ctx context.Context, req model.HistoryRequest) ([]model.TickData, error) {
	sess, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer d.closeSession(sess)

	symbol := tq.Symbol(string(req.Exchange), req.Symbol)
	rows, err := sess.TickDataSeries(ctx, symbol, req.Start, req.End.Add(queryPad))
	if err != nil {
		return nil, fmt.Errorf("tick data series %s: %w", symbol, err)
	}

	ticks := make([]model.TickData, 0, len(rows))
	for _, row := range rows {
		tick, ok := tickFromRow(req, row)
		if !ok {
			d.logger.Warn("skip tick row without last price", "symbol", symbol, "datetime", row.Datetime,
				"bid_price1", row.BidPrice1, "ask_price1", row.AskPrice1, "volume", row.Volume)
			continue
		}
		ticks = append(ticks, tick)
	}
	d.logger.Debug("tick history loaded", "symbol", symbol, "rows", len(rows), "ticks", len(ticks))
	return ticks, nil
}

func (d *Datafeed) connect(ctx context.Context) (tq.Session, error) {
	sess, err := d.dial(ctx, tq.Auth{Username: d.username, Password: d.password})
	if err == nil && sess == nil {
		err = errors.New("dialer returned no session")
	}
	if err != nil {
		writeTrace(d.output, err)
		d.logger.Error("tq session setup failed", "username", d.username, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSessionSetup, err)
	}
	return sess, nil
}

func (d *Datafeed) closeSession(sess tq.Session) {
	if err := sess.Close(); err != nil {
		d.logger.Warn("tq session close failed", "error", err)
	}
}

// writeTrace writes the error chain, outermost first, one cause per line.
func writeTrace(w io.Writer, err error) {
	fmt.Fprintf(w, "tq session setup failed: %v\n", err)
	depth := 0
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		depth++
		fmt.Fprintf(w, "  caused by [%d] %T: %v\n", depth, cause, cause)
	}
}
