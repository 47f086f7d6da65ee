package tracer

import (
	"context"
	"errors"

	"go.uber.org/fx"

	"github.com/aalemi-dev/longtrace/logger"
	"github.com/aalemi-dev/longtrace/observability"
	"github.com/aalemi-dev/longtrace/store"
)

// FXModule initializes the tracer when the application starts and flushes pending
// records when it stops. A tracer.Config must be in the container; a logger.Logger,
// an observability.Observer and a store.Writer are picked up when present.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(logger.LoadConfig, tracer.LoadConfig),
//	)
//
// Tracers themselves are not provided: each goroutine or request creates its own
// with New.
var FXModule = fx.Module("tracer",
	fx.Invoke(RegisterTracerLifecycle),
)

// LifecycleParams are the dependencies of RegisterTracerLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    Config
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
	Writer    store.Writer           `optional:"true"`
}

// RegisterTracerLifecycle registers the start and stop hooks of FXModule.
//
// OnStart fails the application when Initialize fails, except with
// ErrAlreadyInitialized: a host that initialized the tracer itself keeps its state.
func RegisterTracerLifecycle(p LifecycleParams) {
	opts := []Option{WithLogger(p.Logger), WithObserver(p.Observer)}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			if p.Writer != nil {
				_, err = InitializeWithWriter(ctx, p.Writer, p.Config, opts...)
			} else {
				_, err = Initialize(ctx, p.Config, opts...)
			}
			if errors.Is(err, ErrAlreadyInitialized) {
				return nil
			}
			return err
		},
		OnStop: func(ctx context.Context) error {
			if !Initialized() {
				return nil
			}
			return Flush(ctx)
		},
	})
}
