package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no report currency is configured.
const DefaultCurrency = "USD"

// FormatFixed formats d with exactly two decimals, rounding half away from zero.
func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatSigned formats d with a forced sign and two decimals.
// Zero and positive values get "+": 2 → "+2.00", -1.236 → "-1.24".
// The sign follows the unrounded value, so -0.001 → "-0.00".
func FormatSigned(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return "-" + d.Abs().StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}

// FormatMoney formats amount with the symbol of the given ISO 4217 currency
// and exactly two decimals, without digit grouping: "$1234.50", "¥123.40".
// Unknown currency codes fall back to the plain fixed-point value.
func FormatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	c := money.GetCurrency(currency)
	if c == nil {
		return FormatFixed(amount)
	}
	return c.Grapheme + FormatFixed(amount)
}
