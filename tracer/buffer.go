package tracer

import (
	"context"
	"sync"

	"github.com/aalemi-dev/longtrace/store"
)

type trigger string

const (
	triggerThreshold trigger = "threshold"
	triggerExplicit  trigger = "explicit"
)

// buffer accumulates records until the batch size is reached. Appending and cutting
// a full batch happen under one lock, so a record is handed to exactly one flush.
type buffer struct {
	mu      sync.Mutex
	records []store.Record
	size    int
}

func newBuffer(size int) *buffer {
	return &buffer{
		records: make([]store.Record, 0, size),
		size:    size,
	}
}

// push appends rec. When the buffer reaches the batch size it returns the oldest
// size records, which the caller must flush.
func (b *buffer) push(rec store.Record) []store.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, rec)
	if len(b.records) < b.size {
		return nil
	}
	return b.cutLocked(b.size)
}

// drain removes and returns every pending record.
func (b *buffer) drain() []store.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cutLocked(len(b.records))
}

func (b *buffer) cutLocked(n int) []store.Record {
	if n == 0 {
		return nil
	}
	batch := make([]store.Record, n)
	copy(batch, b.records[:n])

	rest := copy(b.records, b.records[n:])
	clear(b.records[rest:])
	b.records = b.records[:rest]
	return batch
}

func (b *buffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// enqueue adds rec to the buffer and flushes on the calling goroutine when the
// threshold is reached.
func (r *registry) enqueue(ctx context.Context, rec store.Record) error {
	batch := r.buffer.push(rec)
	if batch == nil {
		return nil
	}
	return r.flush(ctx, batch, triggerThreshold)
}

// flush writes batch. On failure the batch is dropped and the classified error
// returned to the caller that triggered the flush.
func (r *registry) flush(ctx context.Context, batch []store.Record, why trigger) error {
	if len(batch) == 0 {
		return nil
	}

	start := r.clock.Now()
	err := asWriteError(r.writer.WriteBatch(ctx, batch))
	elapsed := r.clock.Since(start)
	pending := r.buffer.len()

	r.observeOperation("flush", elapsed, err, int64(len(batch)), map[string]interface{}{
		"trigger": string(why),
		"pending": pending,
	})

	if err != nil {
		r.observeOperation("drop", 0, err, int64(len(batch)), map[string]interface{}{
			"pending": pending,
		})
		r.logger.ErrorWithContext(ctx, "Dropped trace records after failed flush", err, map[string]interface{}{
			"database": r.name,
			"dropped":  len(batch),
			"trigger":  string(why),
		})
		return err
	}

	r.logger.DebugWithContext(ctx, "Flushed trace records", nil, map[string]interface{}{
		"database": r.name,
		"records":  len(batch),
		"trigger":  string(why),
	})
	return nil
}
