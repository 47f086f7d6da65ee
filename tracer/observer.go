package tracer

import (
	"time"

	"github.com/aalemi-dev/longtrace/observability"
)

func (r *registry) observeOperation(operation string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	r.observer.ObserveOperation(observability.OperationContext{
		Component: "tracer",
		Operation: operation,
		Resource:  r.name,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}
