// Package models defines the core data structures used throughout piemail.
package models

import "github.com/shopspring/decimal"

// Quote is the minimal market snapshot for one ticker (FMP "quote-short").
type Quote struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// PriceChange holds the percentage price movements of a ticker.
// Only the one-day change is used by the daily digest.
type PriceChange struct {
	Symbol string          `json:"symbol"`
	OneDay decimal.Decimal `json:"one_day"` // percent, e.g. -1.236 for -1.236%
}

// IsNegative reports whether the one-day change is strictly below zero.
// A change of exactly zero counts as non-negative.
func (c PriceChange) IsNegative() bool {
	return c.OneDay.Sign() < 0
}

// StockInfo is the successful lookup result for one ticker.
type StockInfo struct {
	Symbol string      `json:"symbol"` // the market-data ticker that was queried
	Quote  Quote       `json:"quote"`
	Change PriceChange `json:"change"`
}
