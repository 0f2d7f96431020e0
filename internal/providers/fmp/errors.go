package fmp

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when FMP answers with an empty array.
var ErrEmptyResult = errors.New("empty result")

// Stage names the FMP endpoint a lookup failed on.
type Stage string

const (
	StageQuote  Stage = "quote-short"
	StageChange Stage = "stock-price-change"
)

// FetchError is a per-ticker lookup failure. It wraps an *infra.RemoteError,
// an *infra.DecodeError, ErrEmptyResult or a transport error.
type FetchError struct {
	Ticker string
	Stage  Stage
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fmp %s %s: %v", e.Stage, e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
