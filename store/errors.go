package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConnection is returned when the store cannot be reached: transport or
	// authentication failures and timed-out operations.
	ErrConnection = errors.New("connection error")

	// ErrWrite is returned when the store is reachable but rejects a batch, for
	// example on constraint violations or storage errors.
	ErrWrite = errors.New("write error")

	// ErrAlreadyResolved is returned by EnsureDatabase when called more than once.
	ErrAlreadyResolved = errors.New("database already resolved")

	// ErrNotResolved is returned by WriteBatch before EnsureDatabase succeeded.
	ErrNotResolved = errors.New("database not resolved")

	// ErrInvalidDatabaseName is returned by EnsureDatabase for a blank candidate.
	ErrInvalidDatabaseName = errors.New("invalid database name")
)

// MySQL server error numbers that mean the session could not be established or was torn down.
var mysqlConnectionErrors = map[uint16]struct{}{
	1040: {}, // ER_CON_COUNT_ERROR
	1044: {}, // ER_DBACCESS_DENIED_ERROR
	1045: {}, // ER_ACCESS_DENIED_ERROR
	1053: {}, // ER_SERVER_SHUTDOWN
	1129: {}, // ER_HOST_IS_BLOCKED
	1130: {}, // ER_HOST_NOT_PRIVILEGED
	1203: {}, // ER_TOO_MANY_USER_CONNECTIONS
	2002: {}, // CR_CONNECTION_ERROR
	2003: {}, // CR_CONN_HOST_ERROR
	2006: {}, // CR_SERVER_GONE_ERROR
	2013: {}, // CR_SERVER_LOST
}

// classify wraps err with ErrConnection or ErrWrite. Errors that already carry one
// of the two are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnection) || errors.Is(err, ErrWrite) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return fmt.Errorf("%w: %w", ErrWrite, err)
}

// isConnectionError reports whether err originates from transport, authentication
// or a deadline rather than from the store rejecting a statement.
func isConnectionError(err error) bool {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, mysqldriver.ErrInvalidConn):
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isConnectionSQLState(pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlConnectionErrors[myErr.Number]
		return ok
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Fallback for drivers that only report a message.
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"i/o timeout",
		"server closed the connection",
		"bad connection",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// isConnectionSQLState covers SQLSTATE classes 08 (connection exception),
// 28 (invalid authorization), 53 (insufficient resources) and 57P (operator intervention).
func isConnectionSQLState(code string) bool {
	switch {
	case strings.HasPrefix(code, "08"),
		strings.HasPrefix(code, "28"),
		strings.HasPrefix(code, "57P"),
		code == "53300": // too_many_connections
		return true
	}
	return false
}

// isDuplicateDatabase reports whether err means CREATE DATABASE lost a race with
// another process creating the same database.
func isDuplicateDatabase(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P04" // duplicate_database
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1007 // ER_DB_CREATE_EXISTS
	}
	return false
}

// IsConnectionError reports whether err is a ConnectionError.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsWriteError reports whether err is a WriteError.
func IsWriteError(err error) bool {
	return errors.Is(err, ErrWrite)
}
