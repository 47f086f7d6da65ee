package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// insertChunk caps the number of rows per INSERT statement.
const insertChunk = 500

type spanRow struct {
	TraceID      uuid.UUID     `gorm:"column:trace_id"`
	SpanID       uuid.UUID     `gorm:"column:span_id"`
	ParentSpanID uuid.NullUUID `gorm:"column:parent_span_id"`
	Name         string        `gorm:"column:name"`
	Attributes   *string       `gorm:"column:attributes"`
	StartTime    time.Time     `gorm:"column:start_time"`
	EndTime      *time.Time    `gorm:"column:end_time"`
}

func (spanRow) TableName() string { return spansTable }

type logRow struct {
	TraceID    uuid.NullUUID `gorm:"column:trace_id"`
	SpanID     uuid.NullUUID `gorm:"column:span_id"`
	Message    string        `gorm:"column:message"`
	Attributes *string       `gorm:"column:attributes"`
	Timestamp  time.Time     `gorm:"column:timestamp"`
}

func (logRow) TableName() string { return logsTable }

// WriteBatch inserts records into the spans and logs tables inside one transaction
// bounded by the write timeout. An empty batch is a no-op.
//
// Failures are classified: unreachable or timed-out stores yield ErrConnection, rejected
// statements yield ErrWrite. In both cases nothing from the batch is committed.
func (w *SQLWriter) WriteBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if w.resolved.Load() == nil {
		return ErrNotResolved
	}

	start := time.Now()
	spans, logs, err := partition(records)
	if err != nil {
		w.observeOperation("write_batch", "", time.Since(start), err, 0, nil)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.WriteTimeout)
	defer cancel()

	err = w.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(spans) > 0 {
			if err := tx.CreateInBatches(&spans, insertChunk).Error; err != nil {
				return fmt.Errorf("failed to insert %d spans: %w", len(spans), err)
			}
		}
		if len(logs) > 0 {
			if err := tx.CreateInBatches(&logs, insertChunk).Error; err != nil {
				return fmt.Errorf("failed to insert %d logs: %w", len(logs), err)
			}
		}
		return nil
	})
	err = classify(err)

	w.observeOperation("write_batch", "", time.Since(start), err, int64(len(records)), map[string]interface{}{
		"spans": len(spans),
		"logs":  len(logs),
	})
	if err != nil {
		w.logError(ctx, "Trace batch write failed", err, map[string]interface{}{
			"records": len(records),
		})
	}
	return err
}

// partition converts records into table rows, preserving their relative order.
func partition(records []Record) ([]spanRow, []logRow, error) {
	var (
		spans []spanRow
		logs  []logRow
	)
	for i, rec := range records {
		switch r := rec.(type) {
		case *SpanRecord:
			row := spanRow{
				TraceID:      r.TraceID,
				SpanID:       r.SpanID,
				ParentSpanID: r.ParentSpanID,
				Name:         r.Name,
				Attributes:   jsonText(r.Attributes),
				StartTime:    r.StartTime,
			}
			if !r.EndTime.IsZero() {
				end := r.EndTime
				row.EndTime = &end
			}
			spans = append(spans, row)
		case *LogRecord:
			logs = append(logs, logRow{
				TraceID:    r.TraceID,
				SpanID:     r.SpanID,
				Message:    r.Message,
				Attributes: jsonText(r.Attributes),
				Timestamp:  r.Timestamp,
			})
		default:
			return nil, nil, fmt.Errorf("%w: unsupported record type %T at index %d", ErrWrite, rec, i)
		}
	}
	return spans, logs, nil
}

func jsonText(doc []byte) *string {
	if len(doc) == 0 {
		return nil
	}
	s := string(doc)
	return &s
}
