package binance

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.binance.com")

		if c.baseURL != "https://api.binance.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.binance.com")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with options", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.binance.com",
			WithTimeout(15*time.Second),
			WithRetries(10, 500*time.Millisecond),
			WithLogger(logger),
		)
		if c.httpClient.Timeout != 15*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 15*time.Second)
		}
		if c.maxRetries != 10 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 10)
		}
		if c.retryBackoff != 500*time.Millisecond {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 500*time.Millisecond)
		}
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.binance.com", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("binance error payload", func(t *testing.T) {
		err := newAPIError(400, []byte(`{"code":-1121,"msg":"Invalid symbol."}`))
		expected := "binance api error 400 (code -1121): Invalid symbol."
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("plain body", func(t *testing.T) {
		err := newAPIError(502, []byte("bad gateway"))
		expected := "binance api error 502: Bad Gateway"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{503, true},
			{429, true},
			{418, false},
			{400, false},
			{403, false},
			{404, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

const exchangeInfoBody = `{
  "timezone": "UTC",
  "serverTime": 1704067200000,
  "symbols": [
    {"symbol": "BTCUSDT", "status": "TRADING", "baseAsset": "BTC", "baseAssetPrecision": 8, "quoteAsset": "USDT", "quoteAssetPrecision": 8},
    {"symbol": "ETHUSDT", "status": "TRADING", "baseAsset": "ETH", "baseAssetPrecision": 8, "quoteAsset": "USDT", "quoteAssetPrecision": 8},
    {"symbol": "LUNAUSDT", "status": "BREAK", "baseAsset": "LUNA", "baseAssetPrecision": 8, "quoteAsset": "USDT", "quoteAssetPrecision": 8}
  ]
}`

func TestGetExchangeInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/exchangeInfo" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v3/exchangeInfo")
		}
		w.Write([]byte(exchangeInfoBody))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	info, err := c.GetExchangeInfo(context.Background())
	if err != nil {
		t.Fatalf("GetExchangeInfo failed: %v", err)
	}

	if len(info.Symbols) != 3 {
		t.Fatalf("len(Symbols) = %d, want 3", len(info.Symbols))
	}
	if info.Symbols[0].BaseAssetPrecision != 8 {
		t.Errorf("BaseAssetPrecision = %d, want 8", info.Symbols[0].BaseAssetPrecision)
	}

	m := info.Symbols[1].Market()
	if m.Symbol != "ETHUSDT" || m.Exchange != "binance" || m.QuoteAsset != "USDT" {
		t.Errorf("Market() = %+v, want ETHUSDT on binance", m)
	}
}

func TestGetExchangeInfoRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(exchangeInfoBody))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRetries(3, time.Millisecond))
	if _, err := c.GetExchangeInfo(context.Background()); err != nil {
		t.Fatalf("GetExchangeInfo failed: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestGetExchangeInfoNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1100,"msg":"Illegal characters found in a parameter."}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRetries(3, time.Millisecond))
	_, err := c.GetExchangeInfo(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != -1100 {
		t.Errorf("Code = %d, want -1100", apiErr.Code)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestGetExchangeInfoMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRetries(2, time.Millisecond))
	_, err := c.GetExchangeInfo(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestTradingSymbols(t *testing.T) {
	info := &ExchangeInfo{Symbols: []Symbol{
		{Symbol: "BTCUSDT", Status: "TRADING"},
		{Symbol: "ETHUSDT", Status: "TRADING"},
		{Symbol: "LUNAUSDT", Status: "BREAK"},
	}}

	if got := TradingSymbols(info, nil); len(got) != 2 {
		t.Errorf("TradingSymbols(all) = %d symbols, want 2", len(got))
	}

	got := TradingSymbols(info, []string{"ethusdt", "LUNAUSDT"})
	if len(got) != 1 || got[0].Symbol != "ETHUSDT" {
		t.Errorf("TradingSymbols(allow) = %v, want [ETHUSDT]", got)
	}
}
