package tracer

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/aalemi-dev/longtrace/store"
)

// DefaultBatchSize is the flush threshold used when Config.BatchSize is zero.
const DefaultBatchSize = 10

// Config defines how the tracer connects to its store and when it flushes.
type Config struct {
	// ConnectionString is handed to the store unchanged. PostgreSQL URL and
	// keyword/value forms are accepted, as is mysql:// followed by a MySQL DSN.
	//
	// Environment variable LONGTRACE_DATABASE_URL, falling back to DATABASE_URL.
	ConnectionString string `envconfig:"DATABASE_URL"`

	// BatchSize is the number of pending records that triggers a flush.
	// Zero means DefaultBatchSize; negative values are rejected.
	//
	// Environment variable LONGTRACE_BATCH_SIZE.
	BatchSize int `envconfig:"BATCH_SIZE" default:"10"`

	// DatabaseName is the candidate name of the database receiving the records. An
	// existing database of exactly this name is used; otherwise one is created under
	// a sanitized form of it. Empty means the current local date, e.g. "20260309".
	//
	// Environment variable LONGTRACE_DATABASE_NAME.
	DatabaseName string `envconfig:"DATABASE_NAME"`

	// ConnectTimeout bounds connecting to the store and resolving the database.
	//
	// Environment variable LONGTRACE_CONNECT_TIMEOUT.
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"5s"`

	// WriteTimeout bounds a single batch write. A write that times out fails with
	// ErrConnection.
	//
	// Environment variable LONGTRACE_WRITE_TIMEOUT.
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

// LoadConfig reads Config from LONGTRACE_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("longtrace", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.ConnectionString == "" {
		cfg.ConnectionString = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

// Validate reports whether cfg can be used by Initialize.
func (c Config) Validate() error {
	if c.ConnectionString == "" {
		return fmt.Errorf("%w: connection string is required", ErrInvalidConfig)
	}
	return c.validateBatch()
}

func (c Config) validateBatch() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = store.DefaultConnectTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = store.DefaultWriteTimeout
	}
	return c
}

func (c Config) storeOptions() store.Options {
	return store.Options{
		ConnectTimeout: c.ConnectTimeout,
		WriteTimeout:   c.WriteTimeout,
	}
}
