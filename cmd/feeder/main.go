// Command feeder streams Binance aggregated trades to the gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rickgao/trade-aggregator/internal/binance"
	"github.com/rickgao/trade-aggregator/internal/config"
	"github.com/rickgao/trade-aggregator/internal/connection"
	"github.com/rickgao/trade-aggregator/internal/forwarder"
	"github.com/rickgao/trade-aggregator/internal/logging"
	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/model"
	"github.com/rickgao/trade-aggregator/internal/pb/syncpb"
	"github.com/rickgao/trade-aggregator/internal/poller"
	"github.com/rickgao/trade-aggregator/internal/router"
	"github.com/rickgao/trade-aggregator/internal/supervisor"
	"github.com/rickgao/trade-aggregator/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	envFile := flag.String("env-file", ".env", "dotenv file read before the environment")
	flag.Parse()

	os.Exit(run(*configPath, *envFile))
}

func run(configPath, envFile string) int {
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "feeder: %v\n", err)
		return 1
	}

	cfg, err := config.LoadFeeder(configPath, os.LookupEnv)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger, err := logging.FromConfig(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}

	logger.Info("starting feeder",
		"version", version.Version,
		"exchange", cfg.Exchange,
		"gateway_addr", cfg.Gateway.Addr,
		"metrics_addr", cfg.Metrics.Addr,
	)

	signals := supervisor.NewSignalListener()
	defer signals.Stop()

	ctx := context.Background()

	api := binance.NewClient(cfg.Binance.RestURL,
		binance.WithTimeout(cfg.Binance.Timeout),
		binance.WithRetries(cfg.Binance.MaxRetries, time.Second),
		binance.WithLogger(logging.Component(logger, "binance")),
	)

	info, err := api.GetExchangeInfo(ctx)
	if err != nil {
		logger.Error("failed to fetch exchange info", "error", err)
		return 1
	}

	symbols := binance.TradingSymbols(info, cfg.Binance.Symbols)
	if len(symbols) == 0 {
		logger.Error("no trading symbols to subscribe", "listed", len(info.Symbols))
		return 1
	}
	chunks := streamChunks(symbols, cfg.Binance.StreamsPerConnection)

	logger.Info("fetched exchange info",
		"symbols", len(symbols),
		"connections", len(chunks),
	)

	conn, err := grpc.NewClient(cfg.Gateway.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		logger.Error("failed to create gateway client", "error", err)
		return 1
	}
	defer conn.Close()
	client := syncpb.NewSyncServiceClient(conn)

	promReg := metrics.NewRegistry()
	feederMetrics := metrics.NewFeederMetrics(promReg, cfg.Exchange)

	raw := make(chan connection.RawMessage, cfg.Connections.BufferSize)

	rtr := router.New(router.Config{
		Exchange:   binance.ExchangeName,
		BufferSize: cfg.Gateway.BufferSize,
	}, raw, feederMetrics, logging.Component(logger, "router"))

	fwd := forwarder.New(forwarder.Config{
		Workers:     cfg.Gateway.Workers,
		PushTimeout: cfg.Gateway.PushTimeout,
	}, rtr.Trades(), client, feederMetrics, logging.Component(logger, "forwarder"))

	streams := &streamPool{
		wsURL:    cfg.Binance.WSURL,
		chunks:   chunks,
		cfg:      cfg.Connections,
		interval: cfg.Binance.ConnectInterval,
		metrics:  feederMetrics,
		out:      raw,
		logger:   logging.Component(logger, "stream"),
	}

	exporter := metrics.NewExporter(cfg.Metrics.Addr, promReg, logger)

	sup := supervisor.New(logger)
	sup.Add("streams", streams.Run)
	sup.Add("router", rtr.Run)
	sup.Add("forwarder", fwd.Run)
	sup.Add("metrics", exporter.Serve)
	sup.Add("signals", signals.Run)

	if cfg.Gateway.SyncMarkets {
		markets := poller.New(poller.Config{
			Interval: cfg.Gateway.SyncInterval,
			Timeout:  cfg.Binance.Timeout,
		}, marketSource(api, cfg.Binance.Symbols), announcer(client), logging.Component(logger, "poller"))
		sup.Add("markets", markets.Run)
	}

	exit := sup.Run(ctx)
	logger.Info("feeder stopped", "task", exit.Task, "code", exit.Code())
	return exit.Code()
}

// marketSource lists the exchange's trading markets on every call.
func marketSource(api *binance.Client, allow []string) poller.MarketSource {
	return poller.MarketSourceFunc(func(ctx context.Context) ([]model.Market, error) {
		info, err := api.GetExchangeInfo(ctx)
		if err != nil {
			return nil, err
		}
		symbols := binance.TradingSymbols(info, allow)
		markets := make([]model.Market, 0, len(symbols))
		for _, s := range symbols {
			markets = append(markets, s.Market())
		}
		return markets, nil
	})
}

// announcer sends each market list to the gateway over SyncMarkets.
func announcer(client syncpb.SyncServiceClient) poller.MarketHandler {
	return poller.MarketHandlerFunc(func(ctx context.Context, markets []model.Market) error {
		return forwarder.AnnounceMarkets(ctx, client, markets)
	})
}

// streamChunks groups the symbols' aggTrade streams, perConn per connection.
func streamChunks(symbols []binance.Symbol, perConn int) [][]string {
	names := make([]string, 0, len(symbols))
	for _, s := range symbols {
		names = append(names, binance.AggTradeStream(s.Symbol))
	}
	return binance.ChunkStreams(names, perConn)
}

// streamPool runs one connection.Stream per chunk of stream names.
type streamPool struct {
	wsURL    string
	chunks   [][]string
	cfg      config.ConnectionsConfig
	interval time.Duration // Pause between opening connections
	metrics  *metrics.FeederMetrics
	out      chan<- connection.RawMessage
	logger   *slog.Logger
}

// Run opens the streams one interval apart and blocks until ctx is done.
func (p *streamPool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, chunk := range p.chunks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return g.Wait()
			case <-time.After(p.interval):
			}
		}

		url := binance.CombinedStreamURL(p.wsURL, chunk)
		stream := connection.NewStream(connection.NewStreamConfig(i+1, url, p.cfg), p.metrics, p.logger)
		p.metrics.Streams.Add(float64(len(chunk)))
		g.Go(func() error {
			return stream.Run(ctx, p.out)
		})
	}

	return g.Wait()
}
