// Package fmp implements the Financial Modeling Prep (FMP) market-data client.
// FMP serves quotes and price-change summaries via a REST API with API key
// authentication passed as the "apikey" query parameter.
//
// Free tier: 250 requests/day. Each ticker in the digest costs two requests.
// Docs: https://financialmodelingprep.com/developer/docs
package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seenimoa/piemail/internal/infra"
)

const (
	providerName   = "fmp"
	defaultBaseURL = "https://financialmodelingprep.com/api/v3"
)

// Provider is the FMP client.
type Provider struct {
	apiKey  string
	baseURL string
	client  *infra.Client
}

// Config holds FMP connection settings.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to "https://financialmodelingprep.com/api/v3"
	Client  *infra.Client // defaults to infra.NewClient(infra.DefaultTimeout, nil)
}

// New creates a new FMP provider.
func New(cfg Config) *Provider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.Client
	if client == nil {
		client = infra.NewClient(infra.DefaultTimeout, nil)
	}
	return &Provider{apiKey: cfg.APIKey, baseURL: baseURL, client: client}
}

// Name returns "fmp".
func (p *Provider) Name() string { return providerName }

// Ping checks connectivity and the API key with a single quote lookup.
func (p *Provider) Ping(ctx context.Context) error {
	if _, err := p.QuoteShort(ctx, "AAPL"); err != nil {
		return fmt.Errorf("fmp ping: %w", err)
	}
	return nil
}

// --- Shared helpers ---

// fmpURL builds a full FMP API URL for path/symbol with the API key appended.
func (p *Provider) fmpURL(path, symbol string) string {
	q := url.Values{"apikey": {p.apiKey}}
	return p.baseURL + path + "/" + url.PathEscape(symbol) + "?" + q.Encode()
}

// fetchFMPJSON performs a GET request to FMP and decodes the response.
func (p *Provider) fetchFMPJSON(ctx context.Context, path, symbol string, dest any) error {
	return p.client.GetJSON(ctx, providerName, p.fmpURL(path, symbol), infra.JSONHeaders(), dest)
}

// firstOf returns the canonical element of an FMP array response.
//
// FMP answers symbol lookups with a JSON array even for a single symbol.
// The canonical record is the first element exactly as the service ordered
// it; no sorting or filtering is applied. An empty array means the service
// knows nothing about the symbol and is reported as ErrEmptyResult.
func firstOf[T any](items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyResult
	}
	return items[0], nil
}
