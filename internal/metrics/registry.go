package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rickgao/trade-aggregator/internal/version"
)

// NewRegistry returns a registry with the Go runtime and process collectors
// and a build_info gauge.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "build_info",
			Help:        "Build information. Always 1.",
			ConstLabels: version.Labels(),
		}, func() float64 { return 1 }),
	)
	return reg
}
