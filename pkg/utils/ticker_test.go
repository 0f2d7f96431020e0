package utils

import "testing"

func TestBaseTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MSFT_US_EQ", "MSFT"},
		{"VUSA_EQ", "VUSA"},
		{"MSFT", "MSFT"},
		{"BRK_B_US_EQ", "BRK"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := BaseTicker(tt.input)
			if result != tt.expected {
				t.Errorf("BaseTicker(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestResolveTicker(t *testing.T) {
	aliases := map[string]string{
		"AAPL": "AAPL.US",
		"RR":   "RR.L",
	}

	tests := []struct {
		input    string
		aliases  map[string]string
		expected string
	}{
		{"MSFT_US_EQ", nil, "MSFT"},
		{"MSFT_US_EQ", map[string]string{}, "MSFT"},
		{"AAPL_US_EQ", aliases, "AAPL.US"},
		{"RR_EQ", aliases, "RR.L"},
		{"TSLA_US_EQ", aliases, "TSLA"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ResolveTicker(tt.input, tt.aliases)
			if result != tt.expected {
				t.Errorf("ResolveTicker(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
