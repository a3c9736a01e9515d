// Package server runs the gateway's gRPC endpoint.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Server is a gRPC server with logging and Prometheus interceptors.
type Server struct {
	addr    string
	grpc    *grpc.Server
	metrics *grpc_prometheus.ServerMetrics
	logger  *slog.Logger
}

// New creates a server for addr. Per-method gRPC metrics are registered on
// reg. Services are registered through Registrar before Serve.
func New(addr string, reg prometheus.Registerer, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "grpc")

	metrics := grpc_prometheus.NewServerMetrics()
	metrics.EnableHandlingTimeHistogram()
	reg.MustRegister(metrics)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(metrics.UnaryServerInterceptor(), unaryLogInterceptor(logger)),
		grpc.ChainStreamInterceptor(metrics.StreamServerInterceptor(), streamLogInterceptor(logger)),
	)

	return &Server{
		addr:    addr,
		grpc:    grpc.NewServer(opts...),
		metrics: metrics,
		logger:  logger,
	}
}

// Registrar returns the registrar for service implementations.
func (s *Server) Registrar() grpc.ServiceRegistrar {
	return s.grpc
}

// Serve binds addr and serves until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &ListenerError{Component: "grpc", Addr: s.addr, Err: err}
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on an already bound listener. When ctx ends the
// server stops at once: open streams and in-flight calls are cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.metrics.InitializeMetrics(s.grpc)

	stop := context.AfterFunc(ctx, s.grpc.Stop)
	defer stop()

	s.logger.Info("grpc server listening", "addr", ln.Addr().String())

	err := s.grpc.Serve(ln)
	if err == nil || (errors.Is(err, grpc.ErrServerStopped) && ctx.Err() != nil) {
		return nil
	}
	return &ListenerError{Component: "grpc", Addr: ln.Addr().String(), Err: err}
}

func remoteAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p != nil && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}

func unaryLogInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if err != nil {
			logger.Warn("grpc request failed",
				"method", info.FullMethod,
				"remote_addr", remoteAddr(ctx),
				"code", status.Code(err).String(),
				"duration", time.Since(start),
			)
		} else {
			logger.Debug("grpc request",
				"method", info.FullMethod,
				"remote_addr", remoteAddr(ctx),
				"duration", time.Since(start),
			)
		}
		return resp, err
	}
}

func streamLogInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		logger.Debug("grpc stream opened",
			"method", info.FullMethod,
			"remote_addr", remoteAddr(ss.Context()),
		)
		err := handler(srv, ss)
		if err != nil {
			logger.Warn("grpc stream failed",
				"method", info.FullMethod,
				"code", status.Code(err).String(),
			)
		}
		return err
	}
}
