package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricSet holds the ingestion counters. attempted == succeeded + failed
// once every observed call has finished.
type MetricSet struct {
	Attempted        prometheus.Counter
	Succeeded        prometheus.Counter
	Failed           prometheus.Counter
	Duration         prometheus.Histogram
	SyncMarketsCalls prometheus.Counter
	DatabaseUp       prometheus.Gauge
}

// NewMetricSet creates the ingestion metrics and registers them on reg.
func NewMetricSet(reg prometheus.Registerer) *MetricSet {
	f := promauto.With(reg)
	return &MetricSet{
		Attempted: f.NewCounter(prometheus.CounterOpts{
			Name: "aggregator_incoming_trades_total",
			Help: "The total number of incoming trades",
		}),
		Succeeded: f.NewCounter(prometheus.CounterOpts{
			Name: "aggregator_incoming_trades_success",
			Help: "The number of incoming trades saved to the database",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "aggregator_incoming_trades_failed",
			Help: "The number of incoming trades that could not be saved",
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "aggregator_incoming_trade_rpc_duration_seconds",
			Help:    "PushTrade handling latency",
			Buckets: prometheus.DefBuckets,
		}),
		SyncMarketsCalls: f.NewCounter(prometheus.CounterOpts{
			Name: "aggregator_sync_markets_calls_total",
			Help: "The number of SyncMarkets streams accepted",
		}),
		DatabaseUp: f.NewGauge(prometheus.GaugeOpts{
			Name: "aggregator_database_up",
			Help: "1 when the last database ping succeeded, 0 otherwise",
		}),
	}
}
