package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rickgao/trade-aggregator/internal/database"
)

// PoolStatser reports connection pool stats. *database.Registry implements it.
type PoolStatser interface {
	Stats() database.PoolStats
}

// PoolCollector exports pool stats, read at scrape time.
type PoolCollector struct {
	source PoolStatser

	acquires         *prometheus.Desc
	emptyAcquires    *prometheus.Desc
	canceledAcquires *prometheus.Desc
	acquireSeconds   *prometheus.Desc
	acquiredConns    *prometheus.Desc
	idleConns        *prometheus.Desc
	totalConns       *prometheus.Desc
	maxConns         *prometheus.Desc
	newConns         *prometheus.Desc
}

// NewPoolCollector creates a collector over source.
func NewPoolCollector(source PoolStatser) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("aggregator_db_pool_"+name, help, nil, nil)
	}
	return &PoolCollector{
		source:           source,
		acquires:         desc("acquires_total", "Successful connection acquires"),
		emptyAcquires:    desc("empty_acquires_total", "Acquires that waited for the connection"),
		canceledAcquires: desc("canceled_acquires_total", "Acquires canceled by their context"),
		acquireSeconds:   desc("acquire_seconds_total", "Time spent acquiring the connection"),
		acquiredConns:    desc("acquired_conns", "Connections in use"),
		idleConns:        desc("idle_conns", "Idle connections"),
		totalConns:       desc("total_conns", "Open connections"),
		maxConns:         desc("max_conns", "Connection limit"),
		newConns:         desc("new_conns_total", "Connections opened, including reconnects"),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquires
	ch <- c.emptyAcquires
	ch <- c.canceledAcquires
	ch <- c.acquireSeconds
	ch <- c.acquiredConns
	ch <- c.idleConns
	ch <- c.totalConns
	ch <- c.maxConns
	ch <- c.newConns
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.acquires, prometheus.CounterValue, float64(s.AcquireCount))
	ch <- prometheus.MustNewConstMetric(c.emptyAcquires, prometheus.CounterValue, float64(s.EmptyAcquireCount))
	ch <- prometheus.MustNewConstMetric(c.canceledAcquires, prometheus.CounterValue, float64(s.CanceledAcquireCount))
	ch <- prometheus.MustNewConstMetric(c.acquireSeconds, prometheus.CounterValue, s.AcquireDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.acquiredConns, prometheus.GaugeValue, float64(s.AcquiredConns))
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(s.IdleConns))
	ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(s.TotalConns))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(s.MaxConns))
	ch <- prometheus.MustNewConstMetric(c.newConns, prometheus.CounterValue, float64(s.NewConnsCount))
}
