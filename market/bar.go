package market

import "time"

// Bar is one instrument's daily OHLCV record. Bars are immutable once
// produced by a feed.
type Bar struct {
	Code   string
	Name   string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Amount float64
}

// PriceMap holds one reference price per instrument code for a single
// trading day.
type PriceMap map[string]float64
