package fmp

import "github.com/shopspring/decimal"

// fmpQuoteShort is one element of /quote-short/{symbol}. Only the price is
// read; other fields such as volume are ignored.
//
//	[{"symbol":"MSFT","price":412.5,"volume":18234567}]
type fmpQuoteShort struct {
	Symbol string           `json:"symbol"`
	Price  *decimal.Decimal `json:"price"`
}

// fmpPriceChange is one element of /stock-price-change/{symbol}.
// Values are percentages; only the one-day change is read.
//
//	[{"symbol":"MSFT","1D":-1.236,"5D":2.1,"1M":4.8,...}]
type fmpPriceChange struct {
	Symbol string           `json:"symbol"`
	OneDay *decimal.Decimal `json:"1D"`
}
