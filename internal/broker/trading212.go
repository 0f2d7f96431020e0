package broker

import (
	"context"
	"fmt"
	"strings"

	"github.com/seenimoa/piemail/internal/infra"
	"github.com/seenimoa/piemail/pkg/models"
)

const (
	providerName   = "trading212"
	defaultBaseURL = "https://live.trading212.com/api/v0"
)

// ════════════════════════════════════════════════════════════════════
// Trading 212 Public API v0
// ════════════════════════════════════════════════════════════════════

// Trading212 implements PieSource using the Trading 212 REST API.
// Authentication is a static API key sent verbatim in the Authorization header.
type Trading212 struct {
	apiKey  string
	baseURL string
	client  *infra.Client
}

// Trading212Config holds Trading 212 connection settings.
type Trading212Config struct {
	APIKey  string
	BaseURL string        // defaults to "https://live.trading212.com/api/v0"
	Client  *infra.Client // defaults to infra.NewClient(infra.DefaultTimeout, nil)
}

// NewTrading212 creates a new Trading 212 client.
func NewTrading212(cfg Trading212Config) *Trading212 {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.Client
	if client == nil {
		client = infra.NewClient(infra.DefaultTimeout, nil)
	}
	return &Trading212{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  client,
	}
}

// Name returns "trading212".
func (t *Trading212) Name() string { return providerName }

// GetPie fetches GET /equity/pies/{id}.
// A non-2xx answer is an *infra.RemoteError; a body that does not carry the
// settings and instruments of a pie is an *infra.DecodeError.
func (t *Trading212) GetPie(ctx context.Context, id int64) (*models.Pie, error) {
	url := fmt.Sprintf("%s/equity/pies/%d", t.baseURL, id)
	headers := infra.JSONHeaders()
	headers["Authorization"] = t.apiKey

	var resp t212Pie
	if err := t.client.GetJSON(ctx, providerName, url, headers, &resp); err != nil {
		return nil, fmt.Errorf("get pie %d: %w", id, err)
	}

	pie, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("get pie %d: %w", id, err)
	}
	return pie, nil
}

// Ping checks that the API key is accepted by fetching the pie list.
func (t *Trading212) Ping(ctx context.Context) error {
	body, _, err := t.client.DoGet(ctx, providerName, t.baseURL+"/equity/pies", map[string]string{
		"Authorization": t.apiKey,
	})
	if err != nil {
		return fmt.Errorf("trading212 ping: %w", err)
	}
	body.Close()
	return nil
}
