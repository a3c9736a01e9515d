package forwarder

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/model"
	"github.com/rickgao/trade-aggregator/internal/pb/syncpb"
	"github.com/rickgao/trade-aggregator/internal/router"
)

// Config holds forwarder configuration.
type Config struct {
	Workers     int           // Max concurrent PushTrade calls (default: 16)
	PushTimeout time.Duration // Per-call timeout (default: 2s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:     16,
		PushTimeout: 2 * time.Second,
	}
}

// Stats contains runtime statistics.
type Stats struct {
	Processed int64
	Sent      int64
	Failed    int64
}

// Forwarder pushes trades from the router buffer to the gateway.
type Forwarder struct {
	cfg     Config
	input   *router.TradeQueue
	client  syncpb.SyncServiceClient
	metrics *metrics.FeederMetrics
	logger  *slog.Logger

	processed atomic.Int64
	sent      atomic.Int64
	failed    atomic.Int64
}

// New creates a forwarder draining input into client.
func New(
	cfg Config,
	input *router.TradeQueue,
	client syncpb.SyncServiceClient,
	m *metrics.FeederMetrics,
	logger *slog.Logger,
) *Forwarder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Forwarder{
		cfg:     cfg,
		input:   input,
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Run pushes trades until the input queue is closed or ctx is cancelled,
// then waits for in-flight pushes.
func (f *Forwarder) Run(ctx context.Context) error {
	sem := make(chan struct{}, f.cfg.Workers)
	var wg sync.WaitGroup
	defer wg.Wait()

	f.logger.Info("trade forwarder started",
		"workers", f.cfg.Workers,
		"push_timeout", f.cfg.PushTimeout,
	)

	for {
		trade, err := f.input.Receive(ctx)
		if err != nil || ctx.Err() != nil {
			f.logger.Info("trade forwarder stopped",
				"sent", f.sent.Load(),
				"failed", f.failed.Load(),
			)
			return nil
		}

		f.processed.Add(1)
		f.metrics.Processed.Inc()
		f.metrics.Queued.Inc()

		// Acquire semaphore slot.
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			f.metrics.Queued.Dec()
			return nil
		}

		wg.Add(1)
		go func(trade model.Trade) {
			defer wg.Done()
			defer func() { <-sem }()
			f.push(ctx, trade)
		}(trade)
	}
}

// Stats returns current statistics.
func (f *Forwarder) Stats() Stats {
	return Stats{
		Processed: f.processed.Load(),
		Sent:      f.sent.Load(),
		Failed:    f.failed.Load(),
	}
}

// push sends one trade. Failures are counted and logged, never retried.
func (f *Forwarder) push(ctx context.Context, trade model.Trade) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.PushTimeout)
	defer cancel()
	defer f.metrics.Queued.Dec()

	if _, err := f.client.PushTrade(ctx, trade.Proto()); err != nil {
		f.failed.Add(1)
		f.metrics.SentFailed.Inc()
		f.logger.Debug("failed to push trade",
			"symbol", trade.Symbol,
			"error", err,
		)
		return
	}

	f.sent.Add(1)
	f.metrics.SentSuccess.Inc()
}
