package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a Prometheus registry holding the tracing client's collectors and,
// when an address is configured, the HTTP server that exposes it.
//
// Metrics implements observability.Observer: pass it to tracer.WithObserver and every
// flush and batch write is counted and timed.
type Metrics struct {
	// Registry holds every collector created by NewMetrics.
	Registry *prometheus.Registry

	// Server exposes Registry on /metrics. It is nil when Config.Address is empty.
	Server *http.Server

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	records    *prometheus.CounterVec
	dropped    prometheus.Counter
	pending    prometheus.Gauge
}

// NewMetrics creates the registry and registers:
//
//	<ns>_operations_total{component,operation,status}
//	<ns>_operation_duration_seconds{component,operation}
//	<ns>_records_total{component,operation}
//	<ns>_dropped_records_total
//	<ns>_pending_records
//
// All collectors carry a constant service label when cfg.ServiceName is set.
func NewMetrics(cfg Config) *Metrics {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)
	}

	m := &Metrics{
		Registry: registry,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Completed store and buffer operations.",
		}, []string{"component", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of store and buffer operations.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"component", "operation"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Trace records handled by successful operations.",
		}, []string{"component", "operation"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_records_total",
			Help:      "Trace records discarded after a failed flush.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_records",
			Help:      "Records waiting in the batch buffer after the last flush.",
		}),
	}

	registerer.MustRegister(m.operations, m.duration, m.records, m.dropped, m.pending)
	if cfg.RuntimeCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: mux,
		}
	}

	return m
}

// Handler serves Registry in the Prometheus exposition format, for hosts that mount
// it on their own router.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
