package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rickgao/trade-aggregator/internal/connection"
	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/model"
)

const aggTradeEvent = "aggTrade"

// ErrNotTrade is returned by ParseAggTrade for well-formed frames that do
// not carry an aggregated trade.
var ErrNotTrade = errors.New("frame is not an aggregated trade")

// Router parses raw combined-stream frames into trades and queues them for
// the forwarder.
type Router struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.FeederMetrics

	// Input from the streams
	input <-chan connection.RawMessage

	// Output to the forwarder
	trades *TradeQueue

	mu              sync.RWMutex
	received        int64
	routed          int64
	parseErrors     int64
	unknownMessages int64
}

// New creates a router reading from input.
func New(cfg Config, input <-chan connection.RawMessage, m *metrics.FeederMetrics, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		input:   input,
		trades:  NewTradeQueue(cfg.BufferSize, m),
	}
}

// Trades returns the queue the forwarder drains.
func (r *Router) Trades() *TradeQueue {
	return r.trades
}

// Run routes frames until ctx is cancelled or the input is closed, then
// closes the trade queue so consumers finish what is queued.
func (r *Router) Run(ctx context.Context) error {
	defer r.trades.Close()

	r.logger.Info("trade router started", "buffer", r.cfg.BufferSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("trade router stopped")
			return nil
		case raw, ok := <-r.input:
			if !ok {
				r.logger.Info("input channel closed")
				return nil
			}
			r.route(raw)
		}
	}
}

// Stats returns current statistics.
func (r *Router) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		MessagesReceived: r.received,
		TradesRouted:     r.routed,
		ParseErrors:      r.parseErrors,
		UnknownMessages:  r.unknownMessages,
		Queue:            r.trades.Stats(),
	}
}

// route parses and queues a single frame.
func (r *Router) route(raw connection.RawMessage) {
	r.mu.Lock()
	r.received++
	r.mu.Unlock()

	trade, err := ParseAggTrade(raw.Data, r.cfg.Exchange)
	switch {
	case errors.Is(err, ErrNotTrade):
		// Subscription acks and other event types
		r.logger.Debug("skipping frame", "conn", raw.ConnID)
		r.mu.Lock()
		r.unknownMessages++
		r.mu.Unlock()
		return
	case err != nil:
		r.logger.Warn("failed to parse trade", "conn", raw.ConnID, "error", err)
		r.metrics.ParseErrors.Inc()
		r.mu.Lock()
		r.parseErrors++
		r.mu.Unlock()
		return
	}

	if r.trades.Push(trade) {
		r.mu.Lock()
		r.routed++
		r.mu.Unlock()
	}
}

// ParseAggTrade converts a combined-stream aggTrade frame to a trade of
// exchange. The millisecond trade time becomes fractional seconds.
func ParseAggTrade(data []byte, exchange string) (model.Trade, error) {
	var frame combinedFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return model.Trade{}, fmt.Errorf("decode frame: %w", err)
	}
	if frame.Data.EventType != aggTradeEvent {
		return model.Trade{}, ErrNotTrade
	}

	wire := frame.Data
	return model.Trade{
		Symbol:    wire.Symbol,
		Price:     wire.Price,
		Quantity:  wire.Quantity,
		TradeTime: decimal.New(wire.TradeTime, -3).InexactFloat64(),
		Exchange:  exchange,
	}, nil
}
