// Command gateway accepts trades over gRPC and stores them in PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rickgao/trade-aggregator/internal/config"
	"github.com/rickgao/trade-aggregator/internal/database"
	"github.com/rickgao/trade-aggregator/internal/exchanges"
	"github.com/rickgao/trade-aggregator/internal/ingest"
	"github.com/rickgao/trade-aggregator/internal/logging"
	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/pb/exchangespb"
	"github.com/rickgao/trade-aggregator/internal/pb/syncpb"
	"github.com/rickgao/trade-aggregator/internal/server"
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
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		return 1
	}

	cfg, err := config.LoadGateway(configPath, os.LookupEnv)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger, err := logging.FromConfig(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}

	logger.Info("starting gateway",
		"version", version.Version,
		"commit", version.Commit,
		"grpc_addr", cfg.GRPC.Addr,
		"metrics_addr", cfg.Metrics.Addr,
	)

	// Register before anything slow so an early signal is not lost.
	signals := supervisor.NewSignalListener()
	defer signals.Stop()

	ctx := context.Background()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	reg, err := database.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}

	catalog, err := database.DefaultCatalog()
	if err != nil {
		logger.Error("failed to load sql catalog", "error", err)
		reg.Close()
		return 1
	}
	if err := reg.Bootstrap(connectCtx, catalog); err != nil {
		logger.Error("failed to bootstrap database", "error", err)
		reg.Close()
		return 1
	}

	logger.Info("statements ready", "names", reg.Names())

	promReg := metrics.NewRegistry()
	metricSet := metrics.NewMetricSet(promReg)
	promReg.MustRegister(metrics.NewPoolCollector(reg))

	srv := server.New(cfg.GRPC.Addr, promReg, logger)
	syncpb.RegisterSyncServiceServer(srv.Registrar(), ingest.NewHandler(reg, metricSet, logger))
	exchangespb.RegisterExchangeServiceServer(srv.Registrar(), exchanges.NewHandler(reg, logger))

	exporter := metrics.NewExporter(cfg.Metrics.Addr, promReg, logger)

	sup := supervisor.New(logger)
	sup.Add("grpc", srv.Serve)
	sup.Add("metrics", exporter.Serve)
	sup.Add("signals", signals.Run)
	sup.Add("database", func(ctx context.Context) error {
		return reg.WatchHealth(ctx, cfg.Database.HealthCheckPeriod, metricSet.DatabaseUp)
	})

	// The registry stays open: Close would wait for in-flight queries.
	exit := sup.Run(ctx)
	logger.Info("gateway stopped", "task", exit.Task, "code", exit.Code())
	return exit.Code()
}
