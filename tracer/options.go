package tracer

import (
	"github.com/zoobzio/clockz"

	"github.com/aalemi-dev/longtrace/logger"
	"github.com/aalemi-dev/longtrace/observability"
)

// Option customizes Initialize.
type Option func(*options)

type options struct {
	logger    logger.Logger
	observers []observability.Observer
	observer  observability.Observer
	clock     clockz.Clock
}

func newOptions(opts []Option) options {
	o := options{
		logger: logger.NewNop(),
		clock:  clockz.RealClock,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.observer = observability.Multi(o.observers...)
	if o.observer == nil {
		o.observer = observability.NewNoOpObserver()
	}
	return o
}

// WithLogger sets the logger for lifecycle and failure diagnostics.
// Without it the tracer is silent.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver adds an observer notified of every flush, drop and store operation.
// It may be given several times; nil is ignored.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// WithClock replaces the wall clock used for record timestamps and the default
// database name. Tests pass a clockz fake clock.
func WithClock(c clockz.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
