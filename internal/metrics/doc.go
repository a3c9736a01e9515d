// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Incoming trade RPCs: attempted, succeeded, failed, latency
//   - Database connection pool stats
//   - Feeder websocket connections, reconnects and forwarded trades
//   - Build info, Go runtime and process collectors
//
// Everything is registered on an explicit *prometheus.Registry created by
// NewRegistry; nothing uses the global default registry.
package metrics
