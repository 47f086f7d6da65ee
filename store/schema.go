package store

import (
	"fmt"
	"strings"
)

const (
	spansTable = "spans"
	logsTable  = "logs"

	// maxDatabaseNameLen is the PostgreSQL identifier limit; MySQL allows one more byte.
	maxDatabaseNameLen = 63
)

// postgresSchema creates the span and log tables of a resolved PostgreSQL database.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS spans (
		id BIGSERIAL PRIMARY KEY,
		trace_id UUID NOT NULL,
		span_id UUID NOT NULL UNIQUE,
		parent_span_id UUID,
		name TEXT NOT NULL,
		attributes JSONB,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_spans_trace_id ON spans(trace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_spans_parent_span_id ON spans(parent_span_id)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id BIGSERIAL PRIMARY KEY,
		trace_id UUID,
		span_id UUID,
		message TEXT NOT NULL,
		attributes JSONB,
		timestamp TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_trace_id ON logs(trace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_span_id ON logs(span_id)`,
}

// mysqlSchema is the MySQL/MariaDB equivalent. Indexes are declared inline because
// MySQL has no CREATE INDEX IF NOT EXISTS.
var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS spans (" +
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
		"trace_id CHAR(36) NOT NULL, " +
		"span_id CHAR(36) NOT NULL, " +
		"parent_span_id CHAR(36) NULL, " +
		"name TEXT NOT NULL, " +
		"attributes JSON NULL, " +
		"start_time DATETIME(6) NOT NULL, " +
		"end_time DATETIME(6) NULL, " +
		"UNIQUE KEY uq_spans_span_id (span_id), " +
		"KEY idx_spans_trace_id (trace_id), " +
		"KEY idx_spans_parent_span_id (parent_span_id)" +
		") DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS logs (" +
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
		"trace_id CHAR(36) NULL, " +
		"span_id CHAR(36) NULL, " +
		"message TEXT NOT NULL, " +
		"attributes JSON NULL, " +
		"timestamp DATETIME(6) NOT NULL, " +
		"KEY idx_logs_trace_id (trace_id), " +
		"KEY idx_logs_span_id (span_id)" +
		") DEFAULT CHARSET=utf8mb4",
}

func schemaFor(d Dialect) []string {
	if d == DialectMySQL {
		return mysqlSchema
	}
	return postgresSchema
}

func databaseExistsSQL(d Dialect) string {
	if d == DialectMySQL {
		return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"
	}
	return "SELECT COUNT(*) FROM pg_database WHERE datname = ?"
}

// createDatabaseSQL cannot use bind parameters; name must come from SanitizeDatabaseName.
func createDatabaseSQL(d Dialect, name string) string {
	if d == DialectMySQL {
		return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)
	}
	return fmt.Sprintf(`CREATE DATABASE "%s"`, name)
}

// SanitizeDatabaseName derives a safe database identifier from a candidate name.
// The result is lowercase, contains only [a-z0-9_] and is at most 63 bytes long.
// A blank candidate yields "".
func SanitizeDatabaseName(candidate string) string {
	candidate = strings.TrimSpace(candidate)

	var b strings.Builder
	for _, r := range strings.ToLower(candidate) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxDatabaseNameLen {
			break
		}
	}
	return b.String()
}
