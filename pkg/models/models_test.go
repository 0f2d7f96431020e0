package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPieSettingsCreated(t *testing.T) {
	s := PieSettings{ID: 4667358, Name: "Dynamic Pie", CreationDate: 1750267596}
	want := time.Date(2025, 6, 18, 17, 26, 36, 0, time.UTC)
	if got := s.Created(); !got.Equal(want) {
		t.Errorf("Created: got %v, want %v", got, want)
	}
}

func TestPieTickersKeepsOrder(t *testing.T) {
	p := &Pie{Instruments: []Holding{
		{Ticker: "MSFT_US_EQ"},
		{Ticker: "FAKE_US_EQ"},
		{Ticker: "AAPL_US_EQ"},
	}}
	got := p.Tickers()
	want := []string{"MSFT_US_EQ", "FAKE_US_EQ", "AAPL_US_EQ"}
	if len(got) != len(want) {
		t.Fatalf("Tickers: got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tickers[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPriceChangeIsNegative(t *testing.T) {
	tests := []struct {
		change string
		want   bool
	}{
		{"0", false},
		{"0.0", false},
		{"2.5", false},
		{"-0.01", true},
		{"-1.236", true},
	}
	for _, tt := range tests {
		t.Run(tt.change, func(t *testing.T) {
			c := PriceChange{OneDay: decimal.RequireFromString(tt.change)}
			if got := c.IsNegative(); got != tt.want {
				t.Errorf("IsNegative(%s) = %v, want %v", tt.change, got, tt.want)
			}
		})
	}
}

func TestStockInfoJSON(t *testing.T) {
	info := StockInfo{
		Symbol: "MSFT",
		Quote:  Quote{Symbol: "MSFT", Price: decimal.RequireFromString("123.4")},
		Change: PriceChange{Symbol: "MSFT", OneDay: decimal.RequireFromString("2")},
	}
	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"symbol":"MSFT","quote":{"symbol":"MSFT","price":"123.4"},"change":{"symbol":"MSFT","one_day":"2"}}`
	if string(data) != want {
		t.Errorf("JSON: got %s, want %s", data, want)
	}
}
