package metrics

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "longtrace"

// Config controls the Prometheus collectors exposed for the tracing client.
type Config struct {
	// Address is where the /metrics HTTP server listens, e.g. ":9464".
	// Empty disables the server; the registry can still be mounted through Handler.
	//
	// Environment variable LONGTRACE_METRICS_ADDRESS.
	Address string `yaml:"address" envconfig:"ADDRESS"`

	// Namespace prefixes metric names. Defaults to "longtrace".
	//
	// Environment variable LONGTRACE_METRICS_NAMESPACE.
	Namespace string `yaml:"namespace" envconfig:"NAMESPACE" default:"longtrace"`

	// ServiceName is attached to every metric as the constant "service" label.
	//
	// Environment variable LONGTRACE_METRICS_SERVICE_NAME.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`

	// RuntimeCollectors registers the Go runtime and process collectors on the same
	// registry. Leave it off when the host already exports them.
	//
	// Environment variable LONGTRACE_METRICS_RUNTIME_COLLECTORS.
	RuntimeCollectors bool `yaml:"runtime_collectors" envconfig:"RUNTIME_COLLECTORS" default:"false"`
}

// LoadConfig reads Config from LONGTRACE_METRICS_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("longtrace_metrics", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load metrics config: %w", err)
	}
	return cfg, nil
}
