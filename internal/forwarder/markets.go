package forwarder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rickgao/trade-aggregator/internal/model"
	"github.com/rickgao/trade-aggregator/internal/pb/syncpb"
)

// AnnounceMarkets streams markets to the gateway over SyncMarkets.
func AnnounceMarkets(ctx context.Context, client syncpb.SyncServiceClient, markets []model.Market) error {
	stream, err := client.SyncMarkets(ctx)
	if err != nil {
		return fmt.Errorf("open sync markets stream: %w", err)
	}

	for _, m := range markets {
		if err := stream.Send(m.Proto()); err != nil {
			// The server ended the stream; CloseAndRecv reports why.
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("send market %s: %w", m.Symbol, err)
		}
	}

	if _, err := stream.CloseAndRecv(); err != nil {
		return fmt.Errorf("close sync markets stream: %w", err)
	}
	return nil
}
