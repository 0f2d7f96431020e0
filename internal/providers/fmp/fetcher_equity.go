package fmp

import (
	"context"

	"github.com/seenimoa/piemail/internal/infra"
	"github.com/seenimoa/piemail/pkg/models"
)

// QuoteShort fetches the current price of symbol from /quote-short.
func (p *Provider) QuoteShort(ctx context.Context, symbol string) (models.Quote, error) {
	var results []fmpQuoteShort
	if err := p.fetchFMPJSON(ctx, "/quote-short", symbol, &results); err != nil {
		return models.Quote{}, &FetchError{Ticker: symbol, Stage: StageQuote, Err: err}
	}

	q, err := firstOf(results)
	if err != nil {
		return models.Quote{}, &FetchError{Ticker: symbol, Stage: StageQuote, Err: err}
	}
	if q.Price == nil {
		return models.Quote{}, &FetchError{
			Ticker: symbol,
			Stage:  StageQuote,
			Err:    infra.NewDecodeError(providerName, "missing field %q", "price"),
		}
	}

	return models.Quote{Symbol: q.Symbol, Price: *q.Price}, nil
}

// PriceChange fetches the percentage price changes of symbol from
// /stock-price-change. Only the one-day change is kept.
func (p *Provider) PriceChange(ctx context.Context, symbol string) (models.PriceChange, error) {
	var results []fmpPriceChange
	if err := p.fetchFMPJSON(ctx, "/stock-price-change", symbol, &results); err != nil {
		return models.PriceChange{}, &FetchError{Ticker: symbol, Stage: StageChange, Err: err}
	}

	c, err := firstOf(results)
	if err != nil {
		return models.PriceChange{}, &FetchError{Ticker: symbol, Stage: StageChange, Err: err}
	}
	if c.OneDay == nil {
		return models.PriceChange{}, &FetchError{
			Ticker: symbol,
			Stage:  StageChange,
			Err:    infra.NewDecodeError(providerName, "missing field %q", "1D"),
		}
	}

	return models.PriceChange{Symbol: c.Symbol, OneDay: *c.OneDay}, nil
}

// FetchStockInfo looks up the quote and then the price change of ticker.
// The second request is skipped when the first fails. Every failure is a
// *FetchError; callers collecting a batch should record it and move on.
func (p *Provider) FetchStockInfo(ctx context.Context, ticker string) (*models.StockInfo, error) {
	quote, err := p.QuoteShort(ctx, ticker)
	if err != nil {
		return nil, err
	}

	change, err := p.PriceChange(ctx, ticker)
	if err != nil {
		return nil, err
	}

	return &models.StockInfo{
		Symbol: ticker,
		Quote:  quote,
		Change: change,
	}, nil
}
