package infra

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport logs every request with its status and latency.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start)

	target := RedactURL(req.URL.String())
	if err != nil {
		t.Logger.Debug("http request failed", "method", req.Method, "url", target, "elapsed", elapsed, "err", RedactError(err))
		return nil, err
	}
	t.Logger.Debug("http request", "method", req.Method, "url", target, "status", resp.StatusCode, "elapsed", elapsed)
	return resp, nil
}
