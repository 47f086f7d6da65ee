package store

import (
	"context"
	"time"
)

// Default values applied by Open when the corresponding Options field is zero.
const (
	DefaultConnectTimeout  = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
)

// Options controls connection establishment and the connection pool of a SQLWriter.
type Options struct {
	// ConnectTimeout bounds connecting, pinging and resolving the target database.
	// A connection attempt that exceeds it fails with ErrConnection.
	ConnectTimeout time.Duration

	// WriteTimeout bounds a single WriteBatch transaction. A write that exceeds it
	// is rolled back and reported as ErrConnection, never as success.
	WriteTimeout time.Duration

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections kept in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is the maximum amount of time a pooled connection may be reused.
	ConnMaxLifetime time.Duration
}

// withDefaults returns a copy of o with zero fields replaced by package defaults.
func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = DefaultMaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = DefaultMaxIdleConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return o
}

// Logger is the subset of logger.Logger the writer uses for lifecycle messages.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
