// Package ingest implements SyncService: every pushed trade becomes one
// insert_trade execution.
package ingest

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rickgao/trade-aggregator/internal/database"
	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/model"
	"github.com/rickgao/trade-aggregator/internal/pb/syncpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store executes named statements. *database.Registry implements it.
type Store interface {
	Exec(ctx context.Context, name string, args ...any) error
}

// Handler is the SyncService implementation.
type Handler struct {
	syncpb.UnimplementedSyncServiceServer

	store   Store
	metrics *metrics.MetricSet
	logger  *slog.Logger
}

// NewHandler creates a handler writing to store.
func NewHandler(store Store, m *metrics.MetricSet, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:   store,
		metrics: m,
		logger:  logger.With("component", "ingest"),
	}
}

// PushTrade stores one trade. Fields are passed to the store unvalidated,
// trade_time included: the store converts the epoch seconds and rejects
// values it cannot represent. Any store failure is reported as codes.Internal.
func (h *Handler) PushTrade(ctx context.Context, req *syncpb.TradeRequest) (*syncpb.Empty, error) {
	h.metrics.Attempted.Inc()
	timer := prometheus.NewTimer(h.metrics.Duration)
	defer timer.ObserveDuration()

	trade := model.TradeFromProto(req)

	err := h.store.Exec(ctx, database.StmtInsertTrade,
		trade.Symbol,
		trade.Price,
		trade.Quantity,
		trade.TradeTime,
		trade.Exchange,
	)
	if err != nil {
		h.metrics.Failed.Inc()
		h.logger.Error("failed to save trade",
			"symbol", trade.Symbol,
			"exchange", trade.Exchange,
			"error", err,
		)
		return nil, status.Error(codes.Internal, "failed to save trade")
	}

	h.metrics.Succeeded.Inc()
	return &syncpb.Empty{}, nil
}

// SyncMarkets accepts the stream and answers at once without reading it.
// Market data is not persisted.
func (h *Handler) SyncMarkets(stream syncpb.SyncService_SyncMarketsServer) error {
	h.metrics.SyncMarketsCalls.Inc()
	h.logger.Debug("sync markets stream accepted; markets are not stored")
	return stream.SendAndClose(&syncpb.Empty{})
}
