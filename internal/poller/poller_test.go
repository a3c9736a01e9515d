package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/trade-aggregator/internal/model"
)

func fixedSource(markets ...model.Market) MarketSource {
	return MarketSourceFunc(func(context.Context) ([]model.Market, error) {
		return markets, nil
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Interval != time.Hour {
		t.Errorf("Interval = %v, want 1h", cfg.Interval)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestPoller_Poll(t *testing.T) {
	source := fixedSource(
		model.Market{Symbol: "BTCUSDT", Exchange: "binance"},
		model.Market{Symbol: "ETHBTC", Exchange: "binance"},
	)

	var handled atomic.Int32
	handler := MarketHandlerFunc(func(ctx context.Context, markets []model.Market) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("handler context has no deadline")
		}
		handled.Add(int32(len(markets)))
		return nil
	})

	p := New(Config{Interval: time.Hour, Timeout: 5 * time.Second}, source, handler, nil)
	p.poll(context.Background())

	if got := handled.Load(); got != 2 {
		t.Errorf("handled = %d, want 2", got)
	}
	stats := p.Stats()
	if stats.Cycles != 1 || stats.Errors != 0 || stats.LastMarkets != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestPoller_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  MarketSource
		handler MarketHandler
	}{
		{
			name: "source fails",
			source: MarketSourceFunc(func(context.Context) ([]model.Market, error) {
				return nil, errors.New("exchange info unavailable")
			}),
			handler: MarketHandlerFunc(func(context.Context, []model.Market) error {
				t.Error("handler called after source failure")
				return nil
			}),
		},
		{
			name:   "handler fails",
			source: fixedSource(model.Market{Symbol: "BTCUSDT"}),
			handler: MarketHandlerFunc(func(context.Context, []model.Market) error {
				return errors.New("gateway unavailable")
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(DefaultConfig(), tt.source, tt.handler, nil)
			p.poll(context.Background())

			if stats := p.Stats(); stats.Errors != 1 || stats.LastMarkets != 0 {
				t.Errorf("Stats() = %+v, want 1 error and no markets", stats)
			}
		})
	}
}

func TestPoller_RunPollsImmediatelyAndOnTick(t *testing.T) {
	var calls atomic.Int32
	handler := MarketHandlerFunc(func(context.Context, []model.Market) error {
		calls.Add(1)
		return nil
	})

	p := New(Config{Interval: 20 * time.Millisecond, Timeout: time.Second}, fixedSource(), handler, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("calls = %d, want >= 3", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
