// streamtest connects to Binance aggregated trade streams and prints parsed
// trades to the console. It does not talk to the gateway.
// Usage: go run ./cmd/streamtest -symbols BTCUSDT,ETHBTC
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rickgao/trade-aggregator/internal/binance"
	"github.com/rickgao/trade-aggregator/internal/config"
	"github.com/rickgao/trade-aggregator/internal/connection"
	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/router"
	"github.com/rickgao/trade-aggregator/internal/supervisor"
)

func main() {
	configPath := flag.String("config", "", "path to optional feeder config file")
	symbols := flag.String("symbols", "BTCUSDT", "comma-separated symbols; empty streams every trading symbol")
	verbose := flag.Bool("verbose", false, "print full trade JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.LoadFeeder(*configPath, os.LookupEnv)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *symbols != "" {
		cfg.Binance.Symbols = strings.Split(*symbols, ",")
	}

	signals := supervisor.NewSignalListener()
	defer signals.Stop()

	ctx := context.Background()

	api := binance.NewClient(cfg.Binance.RestURL,
		binance.WithTimeout(cfg.Binance.Timeout),
		binance.WithLogger(logger),
	)
	info, err := api.GetExchangeInfo(ctx)
	if err != nil {
		logger.Error("failed to fetch exchange info", "error", err)
		os.Exit(1)
	}

	trading := binance.TradingSymbols(info, cfg.Binance.Symbols)
	if len(trading) == 0 {
		logger.Error("no trading symbols matched", "symbols", *symbols)
		os.Exit(1)
	}

	// One connection is enough for a console check.
	names := make([]string, 0, len(trading))
	for _, s := range trading {
		names = append(names, binance.AggTradeStream(s.Symbol))
	}
	chunk := binance.ChunkStreams(names, cfg.Binance.StreamsPerConnection)[0]
	url := binance.CombinedStreamURL(cfg.Binance.WSURL, chunk)

	m := metrics.NewFeederMetrics(metrics.NewRegistry(), cfg.Exchange)
	raw := make(chan connection.RawMessage, cfg.Connections.BufferSize)

	stream := connection.NewStream(connection.NewStreamConfig(1, url, cfg.Connections), m, logger)
	rtr := router.New(router.Config{
		Exchange:   binance.ExchangeName,
		BufferSize: cfg.Gateway.BufferSize,
	}, raw, m, logger)

	logger.Info("streaming started - press Ctrl+C to stop", "streams", len(chunk))

	sup := supervisor.New(logger)
	sup.Add("stream", func(ctx context.Context) error { return stream.Run(ctx, raw) })
	sup.Add("router", rtr.Run)
	sup.Add("printer", func(ctx context.Context) error {
		printTrades(ctx, rtr.Trades(), *verbose)
		return nil
	})
	sup.Add("stats", func(ctx context.Context) error {
		printStats(ctx, rtr, logger)
		return nil
	})
	sup.Add("signals", signals.Run)

	exit := sup.Run(ctx)
	logger.Info("shutdown complete", "task", exit.Task)
	os.Exit(exit.Code())
}

func printTrades(ctx context.Context, trades *router.TradeQueue, verbose bool) {
	for {
		trade, err := trades.Receive(ctx)
		if err != nil {
			return
		}

		if verbose {
			data, _ := json.MarshalIndent(trade, "", "  ")
			fmt.Printf("[TRADE] %s\n", data)
		} else {
			fmt.Printf("[TRADE] symbol=%s price=%s qty=%s time=%s\n",
				trade.Symbol, trade.Price, trade.Quantity, trade.Time().Format(time.RFC3339Nano))
		}
	}
}

func printStats(ctx context.Context, rtr *router.Router, logger *slog.Logger) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := rtr.Stats()
			logger.Info("stats",
				"router_received", stats.MessagesReceived,
				"router_routed", stats.TradesRouted,
				"parse_errors", stats.ParseErrors,
				"unknown", stats.UnknownMessages,
				"queued", stats.Queue.Depth,
			)
		}
	}
}
