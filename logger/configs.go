package logger

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Log levels accepted by Config.Level.
const (
	// Debug outputs every message.
	Debug = "debug"

	// Info outputs info, warning and error messages. This is the default.
	Info = "info"

	// Warning outputs warning and error messages.
	Warning = "warning"

	// Error outputs error messages only.
	Error = "error"
)

// DefaultServiceName populates the "service" field when Config.ServiceName is empty.
const DefaultServiceName = "longtrace"

// Config controls the diagnostics logger.
type Config struct {
	// Level is the minimum level that is written: "debug", "info", "warning" or "error".
	// Unknown values fall back to "info".
	Level string `envconfig:"LEVEL" default:"info"`

	// EnableTracing adds OpenTelemetry trace_id and span_id fields to the *WithContext
	// methods when the context carries a recording span. It correlates library
	// diagnostics with the host application's own tracing.
	EnableTracing bool `envconfig:"ENABLE_TRACING" default:"false"`

	// ServiceName populates the "service" field on every entry.
	ServiceName string `envconfig:"SERVICE_NAME" default:"longtrace"`

	// CallerSkip is the number of stack frames skipped when reporting the caller.
	// Zero means 1, which points at the code calling LoggerClient directly.
	CallerSkip int `envconfig:"CALLER_SKIP" default:"1"`

	// OutputPaths are zap sink URLs. Defaults to stderr.
	OutputPaths []string `envconfig:"OUTPUT_PATHS" default:"stderr"`
}

// LoadConfig reads Config from LONGTRACE_LOG_* environment variables, e.g.
// LONGTRACE_LOG_LEVEL=debug.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("longtrace_log", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load logger config: %w", err)
	}
	return cfg, nil
}
