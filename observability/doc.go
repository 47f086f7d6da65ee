// Package observability defines the hook through which longtrace reports its own
// operations: database resolution, batch writes and buffer flushes.
//
// Both the store and the tracer accept an optional Observer. Nothing is reported
// when no observer is configured.
//
// # Components and operations
//
//	Component  Operation         Resource         Size
//	store      ensure_database   database name    0
//	store      write_batch       database name    records in the batch
//	tracer     flush             database name    records flushed
//	tracer     drop              database name    records discarded after a failed flush
//
// # Usage
//
// Implement Observer directly, or adapt a function:
//
//	obs := observability.ObserverFunc(func(op observability.OperationContext) {
//	    if op.Error != nil {
//	        log.Printf("%s.%s failed: %v", op.Component, op.Operation, op.Error)
//	    }
//	})
//
// The metrics package ships a Prometheus-backed Observer. Several observers can be
// combined with Multi:
//
//	name, err := tracer.Initialize(ctx, cfg,
//	    tracer.WithObserver(observability.Multi(promObserver, obs)),
//	)
package observability
