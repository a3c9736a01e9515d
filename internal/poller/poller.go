package poller

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rickgao/trade-aggregator/internal/model"
)

// MarketSource lists the markets currently offered by an exchange.
type MarketSource interface {
	Markets(ctx context.Context) ([]model.Market, error)
}

// MarketSourceFunc is a function adapter for MarketSource.
type MarketSourceFunc func(context.Context) ([]model.Market, error)

func (f MarketSourceFunc) Markets(ctx context.Context) ([]model.Market, error) {
	return f(ctx)
}

// MarketHandler receives each fetched market list.
type MarketHandler interface {
	HandleMarkets(ctx context.Context, markets []model.Market) error
}

// MarketHandlerFunc is a function adapter for MarketHandler.
type MarketHandlerFunc func(context.Context, []model.Market) error

func (f MarketHandlerFunc) HandleMarkets(ctx context.Context, markets []model.Market) error {
	return f(ctx, markets)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 1h)
	Timeout  time.Duration // Per-cycle timeout (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Hour,
		Timeout:  30 * time.Second,
	}
}

// Stats contains runtime statistics.
type Stats struct {
	Cycles      int64
	Errors      int64
	LastMarkets int64
}

// Poller periodically fetches markets and hands them to a handler.
type Poller struct {
	cfg     Config
	source  MarketSource
	handler MarketHandler
	logger  *slog.Logger

	cycles      atomic.Int64
	errors      atomic.Int64
	lastMarkets atomic.Int64
}

// New creates a new Poller.
func New(cfg Config, source MarketSource, handler MarketHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:     cfg,
		source:  source,
		handler: handler,
		logger:  logger,
	}
}

// Run polls immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("market poller started", "interval", p.cfg.Interval)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("market poller stopped")
			return nil
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Stats returns current statistics.
func (p *Poller) Stats() Stats {
	return Stats{
		Cycles:      p.cycles.Load(),
		Errors:      p.errors.Load(),
		LastMarkets: p.lastMarkets.Load(),
	}
}

// poll runs one fetch-and-handle cycle.
func (p *Poller) poll(ctx context.Context) {
	start := time.Now()
	p.cycles.Add(1)

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	markets, err := p.source.Markets(ctx)
	if err != nil {
		p.errors.Add(1)
		p.logger.Warn("failed to fetch markets", "err", err)
		return
	}

	if err := p.handler.HandleMarkets(ctx, markets); err != nil {
		p.errors.Add(1)
		p.logger.Warn("failed to handle markets", "markets", len(markets), "err", err)
		return
	}

	p.lastMarkets.Store(int64(len(markets)))
	p.logger.Info("poll cycle complete",
		"markets", len(markets),
		"duration", time.Since(start),
	)
}
