package tracer

import (
	"errors"
	"fmt"

	"github.com/aalemi-dev/longtrace/store"
)

var (
	// ErrAlreadyInitialized is returned by Initialize once a previous call succeeded.
	ErrAlreadyInitialized = errors.New("tracer already initialized")

	// ErrNotInitialized is returned by every operation that needs the store before
	// Initialize succeeded.
	ErrNotInitialized = errors.New("tracer not initialized")

	// ErrConnection means the store could not be reached, authentication failed or an
	// operation timed out. Retrying later may succeed.
	ErrConnection = store.ErrConnection

	// ErrWrite means the store was reachable but rejected a batch.
	ErrWrite = store.ErrWrite

	// ErrInvalidConfig is returned for unusable configuration values.
	ErrInvalidConfig = errors.New("invalid tracer config")

	// ErrInvalidAttributes is returned when attributes are not a valid JSON document.
	ErrInvalidAttributes = errors.New("invalid attributes")
)

// IsRetryable reports whether err is worth retrying: the store was unreachable or
// too slow, as opposed to rejecting the data or the tracer being misused.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConnection)
}

// asConnectionError keeps err when it already carries ErrConnection and wraps it
// otherwise. Failing to resolve the database is a connection failure.
func asConnectionError(err error) error {
	if err == nil || errors.Is(err, ErrConnection) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

// asWriteError keeps errors already classified by the store and wraps anything else
// from a custom Writer with ErrWrite.
func asWriteError(err error) error {
	if err == nil || errors.Is(err, ErrConnection) || errors.Is(err, ErrWrite) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrWrite, err)
}
