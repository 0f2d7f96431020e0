package symbols

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seenimoa/piemail/internal/config"
)

func TestParse(t *testing.T) {
	input := "AAPL,AAPL.US\n  RR , RR.L  \n\nmalformed line\nBRK,BRK-B\n"
	m, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Map{"AAPL": "AAPL.US", "RR": "RR.L", "BRK": "BRK-B"}
	if len(m) != len(want) {
		t.Fatalf("got %d entries (%v), want %d", len(m), m, len(want))
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("m[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestParseMalformedLinesDoNotAffectOthers(t *testing.T) {
	clean, _ := Parse(strings.NewReader("A,1\nB,2\n"))
	noisy, _ := Parse(strings.NewReader("junk\nA,1\nno separator here\nB,2\n   \n"))

	if len(clean) != len(noisy) {
		t.Fatalf("entry count differs: %v vs %v", clean, noisy)
	}
	for k, v := range clean {
		if noisy[k] != v {
			t.Errorf("noisy[%q] = %q, want %q", k, noisy[k], v)
		}
	}
}

func TestParseSplitsAtFirstComma(t *testing.T) {
	m, _ := Parse(strings.NewReader("X, a,b \n"))
	if m["X"] != "a,b" {
		t.Errorf("m[X] = %q, want %q", m["X"], "a,b")
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	m, _ := Parse(strings.NewReader("AAPL,AAPL.US\nAAPL,AAPL.NEO\n"))
	if m["AAPL"] != "AAPL.NEO" {
		t.Errorf("m[AAPL] = %q, want AAPL.NEO", m["AAPL"])
	}
}

func TestParseCRLF(t *testing.T) {
	m, _ := Parse(strings.NewReader("AAPL,AAPL.US\r\nRR,RR.L\r\n"))
	if m["AAPL"] != "AAPL.US" || m["RR"] != "RR.L" {
		t.Errorf("CRLF not trimmed: %q", m)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte("AAPL,AAPL.US\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m["AAPL"] != "AAPL.US" {
		t.Errorf("m[AAPL] = %q", m["AAPL"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	var ce *config.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *config.ConfigError, got %T (%v)", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		m        Map
		ticker   string
		expected string
	}{
		{"empty map strips suffix", Map{}, "MSFT_US_EQ", "MSFT"},
		{"nil map strips suffix", nil, "MSFT_US_EQ", "MSFT"},
		{"mapped", Map{"AAPL": "AAPL.US"}, "AAPL_US_EQ", "AAPL.US"},
		{"unmapped falls back", Map{"AAPL": "AAPL.US"}, "TSLA_US_EQ", "TSLA"},
		{"no suffix", Map{"AAPL": "AAPL.US"}, "AAPL", "AAPL.US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Resolve(tt.ticker); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ticker, got, tt.expected)
			}
		})
	}
}
