// Package utils provides common utility functions for piemail.
package utils

import "strings"

// TickerDelimiter separates the base symbol from the exchange/class suffix
// in broker-native tickers ("MSFT_US_EQ").
const TickerDelimiter = "_"

// BaseTicker strips everything from the first TickerDelimiter on.
// "MSFT_US_EQ" → "MSFT", "VUSA_EQ" → "VUSA", "MSFT" → "MSFT".
func BaseTicker(ticker string) string {
	base, _, _ := strings.Cut(ticker, TickerDelimiter)
	return base
}

// ResolveTicker maps a broker-native ticker to the market-data symbol:
// the base ticker is looked up in aliases and returned unchanged when absent.
func ResolveTicker(ticker string, aliases map[string]string) string {
	base := BaseTicker(ticker)
	if mapped, ok := aliases[base]; ok {
		return mapped
	}
	return base
}
