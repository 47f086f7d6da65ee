package store

import (
	"time"

	"github.com/aalemi-dev/longtrace/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// resource is the table the operation touched; when empty it falls back to the
// resolved database name.
func (w *SQLWriter) observeOperation(operation, resource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if w == nil || w.observer == nil {
		return
	}

	if resource == "" {
		resource = w.DatabaseName()
	}

	w.observer.ObserveOperation(observability.OperationContext{
		Component: "store",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}
