// Package tq is the boundary to the TqSdk market-data vendor. The adapter in
// internal/provider/tqsdk only talks to the vendor through these types.
package tq

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuth is returned by a Dialer when credentials are rejected.
	ErrAuth = errors.New("tq: authentication failed")
	// ErrNoSuchSymbol is returned when the vendor does not know the symbol.
	ErrNoSuchSymbol = errors.New("tq: no such symbol")
)

// Auth holds vendor account credentials.
type Auth struct {
	Username string
	Password string
}

// Session is an authenticated vendor connection. Callers must Close it.
//
// Row timestamps are nanoseconds since the unix epoch. The series range is
// [start, end).
type Session interface {
	KlineDataSeries(ctx context.Context, symbol string, durationSeconds int64, start, end time.Time) ([]KlineRow, error)
	TickDataSeries(ctx context.Context, symbol string, start, end time.Time) ([]TickRow, error)
	Close() error
}

// Dialer opens an authenticated Session.
type Dialer func(ctx context.Context, auth Auth) (Session, error)

// Symbol builds the vendor symbol EXCHANGE.SYMBOL
func Symbol(exchange, symbol string) string {
	return fmt.Sprintf("%s.%s", exchange, symbol)
}
