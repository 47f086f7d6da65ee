package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/longtrace/logger"
	"github.com/aalemi-dev/longtrace/observability"
)

// FXModule provides *Metrics and exposes it as observability.Observer, so that
// tracer.FXModule picks it up. A metrics.Config must be in the container.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(metrics.LoadConfig, tracer.LoadConfig),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// LifecycleParams are the dependencies of RegisterMetricsLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the /metrics server in the background on start
// and shuts it down gracefully on stop. It does nothing when no server is configured.
func RegisterMetricsLifecycle(p LifecycleParams) {
	m, log := p.Metrics, p.Logger
	if m.Server == nil {
		return
	}
	if log == nil {
		log = logger.NewNop()
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Metrics server stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down metrics server", nil, nil)
			if err := m.Server.Shutdown(ctx); err != nil {
				log.Error("Error shutting down metrics server", err, nil)
				return err
			}
			return nil
		},
	})
}
