package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../tracer/mock_writer_test.go -package=tracer github.com/aalemi-dev/longtrace/store Writer

// Writer persists batches of trace records to a relational store.
//
// This interface is implemented by the concrete *SQLWriter type. Embedding hosts
// with their own backend may implement it and hand it to tracer.InitializeWithWriter.
type Writer interface {
	// EnsureDatabase looks up the database named after candidate and creates it when
	// missing, then prepares the span and log tables inside it. It returns the name
	// of the database that will receive all subsequent writes. It is called exactly
	// once, at initialization time.
	EnsureDatabase(ctx context.Context, candidate string) (string, error)

	// WriteBatch persists every record inside a single transaction. Either the whole
	// batch commits or none of it does.
	WriteBatch(ctx context.Context, records []Record) error

	// Close releases the underlying connection pool.
	Close() error
}

// Record is a finalized unit of trace data waiting to be persisted.
// It is implemented by *LogRecord and *SpanRecord.
type Record interface {
	// Kind reports which table the record belongs to.
	Kind() Kind
}

// Kind distinguishes the two persisted row shapes.
type Kind int

const (
	// KindLog marks a row of the logs table.
	KindLog Kind = iota + 1
	// KindSpan marks a row of the spans table.
	KindSpan
)

// String returns the table name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLog:
		return logsTable
	case KindSpan:
		return spansTable
	default:
		return "unknown"
	}
}

// LogRecord is a single log event. TraceID and SpanID are set when the event was
// emitted inside an active span.
type LogRecord struct {
	TraceID    uuid.NullUUID
	SpanID     uuid.NullUUID
	Message    string
	Attributes []byte
	Timestamp  time.Time
}

// Kind implements Record.
func (*LogRecord) Kind() Kind { return KindLog }

// SpanRecord is a finalized span. ParentSpanID is invalid for root spans.
type SpanRecord struct {
	TraceID      uuid.UUID
	SpanID       uuid.UUID
	ParentSpanID uuid.NullUUID
	Name         string
	Attributes   []byte
	StartTime    time.Time
	EndTime      time.Time
}

// Kind implements Record.
func (*SpanRecord) Kind() Kind { return KindSpan }

// Duration is the elapsed time between start and end.
func (s *SpanRecord) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
