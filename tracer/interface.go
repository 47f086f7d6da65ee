package tracer

import (
	"context"
)

// Recorder is the recording surface of a Tracer, for code that should not depend
// on the concrete type.
//
// This interface is implemented by the concrete *Tracer type.
type Recorder interface {
	// Log records a log event attached to the innermost open span, if any.
	Log(ctx context.Context, message string, attrs Attributes) error

	// StartSpan opens a span nested under the innermost open span.
	// The span must be ended exactly once.
	StartSpan(ctx context.Context, name string, attrs Attributes) (*Span, error)

	// WithSpan runs fn inside a span that is ended on every exit path.
	WithSpan(ctx context.Context, name string, attrs Attributes, fn func(ctx context.Context) error) error
}

var _ Recorder = (*Tracer)(nil)
