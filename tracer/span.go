package tracer

import (
	"context"
	"sync"

	"github.com/aalemi-dev/longtrace/store"
)

// Span is an open unit of work started by Tracer.StartSpan.
//
// Ending a span records its end time, removes it from its Tracer's stack and queues
// it for persistence. End is idempotent; only the first call has an effect.
type Span struct {
	tracer *Tracer
	reg    *registry

	// ctx is the start context without its cancellation, used for the flush End may
	// trigger.
	ctx context.Context

	mu     sync.Mutex
	record store.SpanRecord
	ended  bool
	once   sync.Once
}

// Context returns the span's identifiers.
func (s *Span) Context() SpanContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SpanContext{
		TraceID:      s.record.TraceID,
		SpanID:       s.record.SpanID,
		ParentSpanID: s.record.ParentSpanID,
		Name:         s.record.Name,
	}
}

// Ended reports whether End has been called.
func (s *Span) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// SetAttributes merges kv into the span's attributes. It fails when the existing
// attributes are not a JSON object or kv cannot be encoded, and is a no-op once the
// span has ended.
func (s *Span) SetAttributes(kv map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil
	}
	merged, err := JSON(string(s.record.Attributes)).With(kv)
	if err != nil {
		return err
	}
	s.record.Attributes = merged.Bytes()
	return nil
}

// RecordError stores err's message under the "error" attribute.
func (s *Span) RecordError(err error) error {
	if err == nil {
		return nil
	}
	return s.SetAttributes(map[string]interface{}{"error": err.Error()})
}

// End finalizes the span. The span always leaves the stack, and spans opened after
// it on the same Tracer leave with it, even when queuing the span fails.
//
// A non-nil error means the flush this End triggered failed; the span itself was
// closed.
func (s *Span) End() error {
	var err error
	s.once.Do(func() {
		s.tracer.remove(s)

		s.mu.Lock()
		s.ended = true
		s.record.EndTime = s.reg.clock.Now()
		rec := s.record
		s.mu.Unlock()

		err = s.reg.enqueue(s.ctx, &rec)
	})
	return err
}
