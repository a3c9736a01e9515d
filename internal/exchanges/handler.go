// Package exchanges implements ExchangeService over the statement registry.
package exchanges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rickgao/trade-aggregator/internal/database"
	"github.com/rickgao/trade-aggregator/internal/model"
	"github.com/rickgao/trade-aggregator/internal/pb/exchangespb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint.
const uniqueViolation = "23505"

// Store executes named statements. *database.Registry implements it.
type Store interface {
	Exec(ctx context.Context, name string, args ...any) error
	Query(ctx context.Context, name string, args ...any) (pgx.Rows, error)
}

// Handler is the ExchangeService implementation.
type Handler struct {
	exchangespb.UnimplementedExchangeServiceServer

	store  Store
	newID  func() uuid.UUID
	logger *slog.Logger
}

// NewHandler creates a handler over store.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  store,
		newID:  uuid.New,
		logger: logger.With("component", "exchanges"),
	}
}

// ListExchanges returns every exchange ordered by name.
func (h *Handler) ListExchanges(ctx context.Context, _ *exchangespb.ListExchangesRequest) (*exchangespb.ListExchangesResponse, error) {
	list, err := h.list(ctx)
	if err != nil {
		h.logger.Error("failed to list exchanges", "error", err)
		return nil, status.Error(codes.Internal, "failed to list exchanges")
	}

	resp := &exchangespb.ListExchangesResponse{
		Exchanges: make([]*exchangespb.Exchange, 0, len(list)),
	}
	for _, e := range list {
		resp.Exchanges = append(resp.Exchanges, e.Proto())
	}
	return resp, nil
}

func (h *Handler) list(ctx context.Context) ([]model.Exchange, error) {
	rows, err := h.store.Query(ctx, database.StmtListExchanges)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Exchange, error) {
		var id, name, description string
		if err := row.Scan(&id, &name, &description); err != nil {
			return model.Exchange{}, err
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return model.Exchange{}, fmt.Errorf("exchange %s id: %w", name, err)
		}
		return model.Exchange{ID: parsed, Name: name, Description: description}, nil
	})
}

// AddExchange stores a new exchange under a random UUID.
func (h *Handler) AddExchange(ctx context.Context, req *exchangespb.AddExchangeRequest) (*exchangespb.AddExchangeResponse, error) {
	id := h.newID()

	err := h.store.Exec(ctx, database.StmtAddExchange, req.GetName(), req.GetDescription(), id.String())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, status.Errorf(codes.AlreadyExists, "exchange %q already exists", req.GetName())
		}
		h.logger.Error("failed to add exchange", "name", req.GetName(), "error", err)
		return nil, status.Error(codes.Internal, "failed to add exchange")
	}

	h.logger.Info("exchange added", "name", req.GetName(), "id", id)
	return &exchangespb.AddExchangeResponse{}, nil
}
