package model

import (
	"fmt"
	"strings"
)

// Interval is the bar period requested from a datafeed.
type Interval string

const (
	Minute Interval = "1m"
	Hour   Interval = "1h"
	Daily  Interval = "d"
	Tick   Interval = "tick"
)

// ParseInterval accepts short codes (1m, 1h, d, tick) and long names (minute, hour, daily).
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1m", "minute":
		return Minute, nil
	case "1h", "hour":
		return Hour, nil
	case "d", "1d", "daily":
		return Daily, nil
	case "tick":
		return Tick, nil
	default:
		return "", fmt.Errorf("unknown interval %q (use: 1m, 1h, d, tick)", s)
	}
}

func (i *Interval) UnmarshalText(text []byte) error {
	v, err := ParseInterval(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
