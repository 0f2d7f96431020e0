package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeAPIs(t *testing.T) (t212URL, fmpURL string) {
	t.Helper()
	t212 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "t212-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"instruments":[{"ticker":"AAPL_US_EQ","currentShare":1,"expectedShare":1}],`+
			`"settings":{"id":42,"name":"P","creationDate":1750267596}}`)
	}))
	t.Cleanup(t212.Close)

	market := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote-short/AAPL.US":
			fmt.Fprint(w, `[{"symbol":"AAPL.US","price":201.5,"volume":10}]`)
		case "/stock-price-change/AAPL.US":
			fmt.Fprint(w, `[{"symbol":"AAPL.US","1D":0.5}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(market.Close)
	return t212.URL, market.URL
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSendDryRunPrintsReport(t *testing.T) {
	t212URL, fmpURL := fakeAPIs(t)
	t.Setenv("EMAIL", "")
	t.Setenv("EMAIL_PASSWORD", "")
	t.Setenv("TRADING_API_TOKEN", "t212-key")
	t.Setenv("FINANCIALMODELINGPREP_API_TOKEN", "fmp-key")
	t.Setenv("PIEMAIL_PORTFOLIO_BASE_URL", t212URL)
	t.Setenv("PIEMAIL_MARKET_DATA_BASE_URL", fmpURL)
	t.Setenv("PIEMAIL_LOGGING_LEVEL", "error")

	symbolsPath := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(symbolsPath, []byte("AAPL,AAPL.US\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "send", "--no-email", "--pie", "42", "--symbols", symbolsPath)
	if err != nil {
		t.Fatalf("send --no-email: %v", err)
	}
	want := `<li><strong>AAPL.US</strong>: Price: $201.50 <span style="color:green">(+0.50%)</span></li>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %s\ngot: %s", want, out)
	}
}

func TestSendRequiresMailSecrets(t *testing.T) {
	t.Setenv("EMAIL", "")
	t.Setenv("EMAIL_PASSWORD", "")
	t.Setenv("TRADING_API_TOKEN", "t")
	t.Setenv("FINANCIALMODELINGPREP_API_TOKEN", "f")

	// Flag values persist on the shared command tree between runs.
	_, err := runCLI(t, "send", "--no-email=false")
	if err == nil || !strings.Contains(err.Error(), "EMAIL") {
		t.Errorf("expected missing EMAIL error, got %v", err)
	}
}
