// Package metrics exports Prometheus metrics about the tracing client itself:
// how many flushes and batch writes ran, how long they took, how many records
// were persisted or dropped, and how many are still pending.
//
// # Usage
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "checkout"})
//	http.Handle("/metrics", m.Handler())
//
//	name, err := tracer.Initialize(ctx, cfg, tracer.WithObserver(m))
//
// With Config.Address set, Metrics also owns an *http.Server for /metrics. Under fx
// the server is started and stopped by FXModule:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(logger.LoadConfig, metrics.LoadConfig, tracer.LoadConfig),
//	)
//
// # Exported series
//
//	longtrace_operations_total{component="tracer",operation="flush",status="ok"}
//	longtrace_operations_total{component="store",operation="write_batch",status="connection_error"}
//	longtrace_operation_duration_seconds_bucket{component="store",operation="write_batch",le="0.01"}
//	longtrace_records_total{component="tracer",operation="flush"}
//	longtrace_dropped_records_total
//	longtrace_pending_records
//
// status is one of ok, connection_error, write_error or error.
//
// # Configuration
//
//	LONGTRACE_METRICS_ADDRESS=:9464
//	LONGTRACE_METRICS_NAMESPACE=longtrace
//	LONGTRACE_METRICS_SERVICE_NAME=checkout
//	LONGTRACE_METRICS_RUNTIME_COLLECTORS=false
package metrics
