package models

import (
	"math"
	"time"
)

// Holding is one instrument inside a pie.
type Holding struct {
	Ticker        string  `json:"ticker"`         // broker-native, e.g. "MSFT_US_EQ"
	CurrentShare  float64 `json:"current_share"`  // 0..1
	ExpectedShare float64 `json:"expected_share"` // 0..1, target allocation
}

// PieSettings identifies a pie.
type PieSettings struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CreationDate float64 `json:"creation_date"` // epoch seconds, fractional
}

// Created returns the creation date as a time.Time (UTC).
func (s PieSettings) Created() time.Time {
	sec, frac := math.Modf(s.CreationDate)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

// Pie is a weighted bundle of holdings as returned by the broker.
type Pie struct {
	Settings    PieSettings `json:"settings"`
	Instruments []Holding   `json:"instruments"`
}

// Tickers returns the broker-native tickers in pie order.
func (p *Pie) Tickers() []string {
	out := make([]string, 0, len(p.Instruments))
	for _, h := range p.Instruments {
		out = append(out, h.Ticker)
	}
	return out
}
