package metrics

import (
	"errors"

	"github.com/aalemi-dev/longtrace/observability"
	"github.com/aalemi-dev/longtrace/store"
)

var _ observability.Observer = (*Metrics)(nil)

// ObserveOperation records one completed operation.
//
// The status label is "ok", "connection_error", "write_error" or "error". Drop
// operations feed the dropped counter only. A "pending" entry in the metadata
// updates the pending gauge.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	if op.Operation == "drop" {
		m.dropped.Add(float64(op.Size))
		m.setPending(op.Metadata)
		return
	}

	m.operations.WithLabelValues(op.Component, op.Operation, status(op.Error)).Inc()
	m.duration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	if op.Error == nil && op.Size > 0 {
		m.records.WithLabelValues(op.Component, op.Operation).Add(float64(op.Size))
	}
	m.setPending(op.Metadata)
}

func (m *Metrics) setPending(metadata map[string]interface{}) {
	if n, ok := metadata["pending"].(int); ok {
		m.pending.Set(float64(n))
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrConnection):
		return "connection_error"
	case errors.Is(err, store.ErrWrite):
		return "write_error"
	default:
		return "error"
	}
}
