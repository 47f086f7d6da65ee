package observability

import "time"

// Observer receives a notification each time an instrumented operation completes.
// Implementations must be safe for concurrent use and should return quickly: they
// are called inline on the goroutine that performed the operation.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the package that performed the operation ("store" or "tracer").
	Component string

	// Operation is what was done, e.g. "write_batch" or "flush".
	Operation string

	// Resource is the database the operation targeted.
	Resource string

	// SubResource narrows Resource when relevant, e.g. a table name.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the error returned by the operation, nil on success.
	Error error

	// Size is the number of records involved.
	Size int64

	// Metadata carries operation-specific extras such as per-table row counts.
	Metadata map[string]interface{}
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

type multiObserver []Observer

func (m multiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		o.ObserveOperation(ctx)
	}
}

// Multi returns an Observer that forwards every operation to each non-nil observer
// in order. It returns nil when no observers remain.
func Multi(observers ...Observer) Observer {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}
