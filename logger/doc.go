// Package logger is the zap-backed structured logger longtrace uses for its own
// diagnostics: initialization, database resolution and failed or dropped batches.
//
// Application log events are not written here; those go through tracer.Log into
// the trace database.
//
// # Usage
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:         logger.Info,
//	    ServiceName:   "checkout",
//	    EnableTracing: true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer log.Sync()
//
//	name, err := tracer.Initialize(ctx, cfg, tracer.WithLogger(log))
//
// Output is JSON with ISO8601 timestamps:
//
//	{"level":"INFO","timestamp":"2026-03-09T15:04:05.000Z","caller":"...","msg":"Tracer initialized","pid":4242,"service":"checkout","database":"20260309","batch_size":10}
//
// # Configuration
//
// LoadConfig reads the environment:
//
//	LONGTRACE_LOG_LEVEL=debug            # debug, info, warning, error
//	LONGTRACE_LOG_ENABLE_TRACING=true    # attach OpenTelemetry trace_id/span_id
//	LONGTRACE_LOG_SERVICE_NAME=checkout
//	LONGTRACE_LOG_CALLER_SKIP=1
//	LONGTRACE_LOG_OUTPUT_PATHS=stderr
//
// # Trace correlation
//
// With EnableTracing set, the *WithContext methods add trace_id and span_id from an
// OpenTelemetry span found in the context, so library diagnostics line up with the
// host's distributed traces.
//
// All methods are safe for concurrent use.
package logger
