package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rickgao/trade-aggregator/internal/database"
	"github.com/rickgao/trade-aggregator/internal/server"
)

func TestMetricSetNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricSet(reg)

	m.Attempted.Inc()
	m.Succeeded.Inc()
	m.Duration.Observe(0.01)

	if got := testutil.ToFloat64(m.Attempted); got != 1 {
		t.Errorf("Attempted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Failed); got != 0 {
		t.Errorf("Failed = %v, want 0", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	got := make(map[string]bool)
	for _, mf := range families {
		got[mf.GetName()] = true
	}
	for _, name := range []string{
		"aggregator_incoming_trades_total",
		"aggregator_incoming_trades_success",
		"aggregator_incoming_trades_failed",
		"aggregator_incoming_trade_rpc_duration_seconds",
		"aggregator_sync_markets_calls_total",
		"aggregator_database_up",
	} {
		if !got[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestMetricSetSeparateRegistries(t *testing.T) {
	// Building twice must not collide: no global registry.
	NewMetricSet(prometheus.NewRegistry())
	NewMetricSet(prometheus.NewRegistry())
}

func TestNewRegistryBuildInfo(t *testing.T) {
	reg := NewRegistry()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var found, goRuntime bool
	for _, mf := range families {
		switch {
		case mf.GetName() == "build_info":
			found = true
			labels := make(map[string]string)
			for _, lp := range mf.GetMetric()[0].GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if _, ok := labels["version"]; !ok {
				t.Errorf("build_info labels = %v, want version label", labels)
			}
		case strings.HasPrefix(mf.GetName(), "go_"):
			goRuntime = true
		}
	}
	if !found {
		t.Error("build_info not registered")
	}
	if !goRuntime {
		t.Error("go runtime metrics not registered")
	}
}

type fakePool struct{ stats database.PoolStats }

func (f fakePool) Stats() database.PoolStats { return f.stats }

func TestPoolCollector(t *testing.T) {
	c := NewPoolCollector(fakePool{stats: database.PoolStats{
		AcquireCount:      10,
		EmptyAcquireCount: 4,
		MaxConns:          1,
		TotalConns:        1,
		AcquireDuration:   1500 * time.Millisecond,
	}})

	if n := testutil.CollectAndCount(c); n != 9 {
		t.Errorf("CollectAndCount = %d, want 9", n)
	}

	expected := `
# HELP aggregator_db_pool_empty_acquires_total Acquires that waited for the connection
# TYPE aggregator_db_pool_empty_acquires_total counter
aggregator_db_pool_empty_acquires_total 4
# HELP aggregator_db_pool_max_conns Connection limit
# TYPE aggregator_db_pool_max_conns gauge
aggregator_db_pool_max_conns 1
# HELP aggregator_db_pool_acquire_seconds_total Time spent acquiring the connection
# TYPE aggregator_db_pool_acquire_seconds_total counter
aggregator_db_pool_acquire_seconds_total 1.5
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"aggregator_db_pool_empty_acquires_total",
		"aggregator_db_pool_max_conns",
		"aggregator_db_pool_acquire_seconds_total",
	)
	if err != nil {
		t.Errorf("CollectAndCompare: %v", err)
	}
}

func TestFeederMetricsPrefix(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFeederMetrics(reg, "binance")
	m.ConnectionsOpen.Set(3)
	m.SentSuccess.Add(2)

	if got := testutil.ToFloat64(m.ConnectionsOpen); got != 3 {
		t.Errorf("ConnectionsOpen = %v, want 3", got)
	}

	n, err := testutil.GatherAndCount(reg, "binance_websocket_connections_open", "binance_grpc_sent_trades_success")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("GatherAndCount = %d, want 2", n)
	}
}

func TestExporterAnyPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricSet(reg)
	m.Attempted.Inc()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	exp := NewExporter(ln.Addr().String(), reg, nil)
	go func() { done <- exp.ServeListener(ctx, ln) }()

	for _, path := range []string{"/metrics", "/", "/anything/else"} {
		resp, err := http.Get("http://" + ln.Addr().String() + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
		if !strings.Contains(string(body), "aggregator_incoming_trades_total 1") {
			t.Errorf("GET %s body missing counter:\n%s", path, body)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ServeListener() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ServeListener did not return after cancel")
	}
}

func TestExporterBindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer taken.Close()

	exp := NewExporter(taken.Addr().String(), prometheus.NewRegistry(), nil)
	err = exp.Serve(context.Background())

	var lerr *server.ListenerError
	if !errors.As(err, &lerr) {
		t.Fatalf("Serve() error = %v, want *server.ListenerError", err)
	}
	if lerr.Component != "metrics" {
		t.Errorf("Component = %q, want %q", lerr.Component, "metrics")
	}
}
