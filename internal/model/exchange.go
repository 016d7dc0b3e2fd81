package model

import (
	"fmt"
	"strings"
)

// Exchange is the exchange code as used by the platform (and by the vendor symbol prefix).
type Exchange string

const (
	SHFE  Exchange = "SHFE"
	DCE   Exchange = "DCE"
	CZCE  Exchange = "CZCE"
	CFFEX Exchange = "CFFEX"
	INE   Exchange = "INE"
	GFEX  Exchange = "GFEX"
	SSE   Exchange = "SSE"
	SZSE  Exchange = "SZSE"
	KQ    Exchange = "KQ" // vendor continuous / index contracts
)

var exchanges = []Exchange{SHFE, DCE, CZCE, CFFEX, INE, GFEX, SSE, SZSE, KQ}

// ParseExchange converts an exchange code (case-insensitive) to Exchange.
func ParseExchange(s string) (Exchange, error) {
	code := Exchange(strings.ToUpper(strings.TrimSpace(s)))
	for _, e := range exchanges {
		if e == code {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown exchange %q", s)
}

// UnmarshalText lets Exchange be decoded from YAML/JSON job files.
func (e *Exchange) UnmarshalText(text []byte) error {
	v, err := ParseExchange(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
