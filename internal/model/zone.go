package model

import "time"

// ChinaTZ is the zone attached to every record produced by the TQ datafeed.
var ChinaTZ = loadChinaTZ()

func loadChinaTZ() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}
