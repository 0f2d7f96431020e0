package infra

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestGetJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"MSFT","price":412.5}`))
	}))
	defer srv.Close()

	c := NewClientFrom(srv.Client())
	var p payload
	if err := c.GetJSON(context.Background(), "test", srv.URL, JSONHeaders(), &p); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if p.Name != "MSFT" || p.Price != 412.5 {
		t.Errorf("decoded: got %+v", p)
	}
}

func TestGetJSONRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClientFrom(srv.Client())
	var p payload
	err := c.GetJSON(context.Background(), "test", srv.URL+"/x?apikey=secret", nil, &p)
	if err == nil {
		t.Fatal("expected error")
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RemoteError, got %T", err)
	}
	if re.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode: got %d, want 403", re.StatusCode)
	}
	if StatusCode(err) != http.StatusForbidden {
		t.Errorf("StatusCode(err): got %d", StatusCode(err))
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks api key: %v", err)
	}
	if !strings.Contains(re.Body, "nope") {
		t.Errorf("Body: got %q", re.Body)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := NewClientFrom(srv.Client())
	var p payload
	err := c.GetJSON(context.Background(), "test", srv.URL, nil, &p)

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
	}
	if de.Service != "test" {
		t.Errorf("Service: got %q", de.Service)
	}
	if StatusCode(err) != 0 {
		t.Errorf("StatusCode(decode error): got %d, want 0", StatusCode(err))
	}
}

func TestDoGetCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClientFrom(srv.Client())
	if _, _, err := c.DoGet(ctx, "test", srv.URL, nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"https://financialmodelingprep.com/api/v3/quote-short/MSFT?apikey=abc123",
			"https://financialmodelingprep.com/api/v3/quote-short/MSFT?apikey=REDACTED",
		},
		{
			"https://live.trading212.com/api/v0/equity/pies/1",
			"https://live.trading212.com/api/v0/equity/pies/1",
		},
		{"::not a url", "::not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RedactURL(tt.input); got != tt.expected {
				t.Errorf("RedactURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoggingTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := NewClient(5*time.Second, logger)

	_, status, err := c.DoGet(context.Background(), "test", srv.URL+"/q?apikey=topsecret", nil)
	if err == nil {
		t.Fatal("expected RemoteError for 418")
	}
	if status != http.StatusTeapot {
		t.Errorf("status: got %d, want 418", status)
	}

	out := buf.String()
	if !strings.Contains(out, "status=418") {
		t.Errorf("log missing status: %s", out)
	}
	if strings.Contains(out, "topsecret") {
		t.Errorf("log leaks api key: %s", out)
	}
}
