package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FeederMetrics holds the metrics of an exchange feeder. Names are prefixed
// with the exchange, e.g. binance_websocket_connections_open.
type FeederMetrics struct {
	ConnectionsOpen prometheus.Gauge
	Reconnects      prometheus.Counter
	ConnectionErrs  prometheus.Counter
	Streams         prometheus.Counter
	Events          prometheus.Counter
	ParseErrors     prometheus.Counter
	Processed       prometheus.Counter
	SentSuccess     prometheus.Counter
	SentFailed      prometheus.Counter
	Queued          prometheus.Gauge
	QueueDepth      prometheus.Gauge
	QueueResizes    prometheus.Counter
}

// NewFeederMetrics creates the feeder metrics for exchange and registers
// them on reg.
func NewFeederMetrics(reg prometheus.Registerer, exchange string) *FeederMetrics {
	f := promauto.With(reg)
	name := func(s string) string { return exchange + "_" + s }

	return &FeederMetrics{
		ConnectionsOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: name("websocket_connections_open"),
			Help: "Open websocket connections",
		}),
		Reconnects: f.NewCounter(prometheus.CounterOpts{
			Name: name("websocket_connection_reconnects_total"),
			Help: "Websocket reconnect attempts",
		}),
		ConnectionErrs: f.NewCounter(prometheus.CounterOpts{
			Name: name("websocket_connection_errors"),
			Help: "Websocket dial or read errors",
		}),
		Streams: f.NewCounter(prometheus.CounterOpts{
			Name: name("websocket_streams_total"),
			Help: "Streams subscribed across all connections",
		}),
		Events: f.NewCounter(prometheus.CounterOpts{
			Name: name("websocket_streams_events_total"),
			Help: "Events received on all streams",
		}),
		ParseErrors: f.NewCounter(prometheus.CounterOpts{
			Name: name("websocket_parse_errors_total"),
			Help: "Frames that could not be parsed into trades",
		}),
		Processed: f.NewCounter(prometheus.CounterOpts{
			Name: name("grpc_processed_trades_total"),
			Help: "Trades handed to the gateway client",
		}),
		SentSuccess: f.NewCounter(prometheus.CounterOpts{
			Name: name("grpc_sent_trades_success"),
			Help: "Trades accepted by the gateway",
		}),
		SentFailed: f.NewCounter(prometheus.CounterOpts{
			Name: name("grpc_sent_trades_failed"),
			Help: "Trades the gateway rejected or that timed out",
		}),
		Queued: f.NewGauge(prometheus.GaugeOpts{
			Name: name("processed_trades_queued"),
			Help: "Trades waiting to be sent",
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: name("trade_queue_depth"),
			Help: "Routed trades not yet taken by the forwarder",
		}),
		QueueResizes: f.NewCounter(prometheus.CounterOpts{
			Name: name("trade_queue_resizes_total"),
			Help: "Times the trade queue grew its backing storage",
		}),
	}
}
