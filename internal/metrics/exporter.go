package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rickgao/trade-aggregator/internal/server"
)

// Exporter serves the registry snapshot over plain HTTP. Every path answers
// with the exposition format.
type Exporter struct {
	addr    string
	handler http.Handler
	logger  *slog.Logger
}

// NewExporter creates an exporter for gatherer on addr.
func NewExporter(addr string, gatherer prometheus.Gatherer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		addr: addr,
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			ErrorLog:      slog.NewLogLogger(logger.Handler(), slog.LevelError),
			ErrorHandling: promhttp.ContinueOnError,
		}),
		logger: logger.With("component", "metrics"),
	}
}

// Serve binds addr and serves until ctx is done or the listener fails.
// Bind and serve failures are returned as *server.ListenerError.
func (e *Exporter) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", e.addr)
	if err != nil {
		return &server.ListenerError{Component: "metrics", Addr: e.addr, Err: err}
	}
	return e.ServeListener(ctx, ln)
}

// ServeListener serves on an already bound listener.
func (e *Exporter) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           e.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() { srv.Close() })
	defer stop()

	e.logger.Info("metrics exporter listening", "addr", ln.Addr().String())

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) && ctx.Err() != nil {
		return nil
	}
	return &server.ListenerError{Component: "metrics", Addr: ln.Addr().String(), Err: err}
}
