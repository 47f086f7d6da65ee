package tracer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/aalemi-dev/longtrace/store"
)

// Tracer records log events and spans into the process-wide buffer.
//
// Each Tracer keeps its own stack of open spans: a span started on a Tracer becomes
// the parent of spans started after it and is attached to every event logged while
// it is open. Stacks of different Tracers never interact.
//
// A Tracer is safe to call from several goroutines, but its stack only nests
// correctly when spans are started and ended in order. Use one Tracer per goroutine
// or request.
type Tracer struct {
	id uuid.UUID

	mu    sync.Mutex
	stack []*Span
}

// SpanContext identifies a span and its position in a trace.
type SpanContext struct {
	TraceID      uuid.UUID
	SpanID       uuid.UUID
	ParentSpanID uuid.NullUUID
	Name         string
}

// IsRoot reports whether the span has no parent.
func (sc SpanContext) IsRoot() bool {
	return !sc.ParentSpanID.Valid
}

// New creates a Tracer with an empty span stack. It always succeeds; using it before
// Initialize fails with ErrNotInitialized.
func New() *Tracer {
	return &Tracer{id: uuid.New()}
}

// ID uniquely identifies the Tracer.
func (t *Tracer) ID() uuid.UUID {
	return t.id
}

// Log records a log event. While a span is open on t the event carries that span's
// trace and span ids.
//
// Log returns ErrNotInitialized before Initialize and ErrInvalidAttributes for
// malformed attributes. It blocks only when this event fills the batch, in which
// case the batch is written before Log returns and a failed write is reported here.
func (t *Tracer) Log(ctx context.Context, message string, attrs Attributes) error {
	r, err := load()
	if err != nil {
		return err
	}
	if err := attrs.Err(); err != nil {
		return err
	}

	rec := &store.LogRecord{
		Message:    message,
		Attributes: attrs.Bytes(),
		Timestamp:  r.clock.Now(),
	}
	if sc, ok := t.Current(); ok {
		rec.TraceID = uuid.NullUUID{UUID: sc.TraceID, Valid: true}
		rec.SpanID = uuid.NullUUID{UUID: sc.SpanID, Valid: true}
	}
	return r.enqueue(ctxOrBackground(ctx), rec)
}

// StartSpan opens a span and pushes it onto t's stack. The span continues the
// trace of the span currently on top of the stack or, when the stack is empty,
// starts a new trace as a root span.
//
// The returned span must be ended exactly once, typically with defer:
//
//	span, err := tr.StartSpan(ctx, "checkout", tracer.Attrs(map[string]interface{}{"cart": id}))
//	if err != nil {
//	    return err
//	}
//	defer span.End()
//
// WithSpan does this for a function body. On error the stack is left unchanged.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs Attributes) (*Span, error) {
	r, err := load()
	if err != nil {
		return nil, err
	}
	if err := attrs.Err(); err != nil {
		return nil, err
	}

	s := &Span{
		tracer: t,
		reg:    r,
		ctx:    context.WithoutCancel(ctxOrBackground(ctx)),
		record: store.SpanRecord{
			SpanID:     uuid.New(),
			Name:       name,
			Attributes: attrs.Bytes(),
		},
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.stack); n > 0 {
		parent := t.stack[n-1]
		s.record.TraceID = parent.record.TraceID
		s.record.ParentSpanID = uuid.NullUUID{UUID: parent.record.SpanID, Valid: true}
	} else {
		s.record.TraceID = uuid.New()
	}
	s.record.StartTime = r.clock.Now()
	t.stack = append(t.stack, s)
	return s, nil
}

// WithSpan runs fn inside a span named name. The span is ended on every exit path:
// normal return, error and panic. A panic is re-raised after the span is ended.
//
// The returned error joins fn's error with a failure to persist the span, so
// errors.Is matches either.
func (t *Tracer) WithSpan(ctx context.Context, name string, attrs Attributes, fn func(ctx context.Context) error) (err error) {
	span, err := t.StartSpan(ctx, name, attrs)
	if err != nil {
		return err
	}

	defer func() {
		endErr := span.End()
		if p := recover(); p != nil {
			panic(p)
		}
		err = errors.Join(err, endErr)
	}()

	return fn(ctx)
}

// Current returns the span on top of t's stack.
func (t *Tracer) Current() (SpanContext, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.stack); n > 0 {
		return t.stack[n-1].Context(), true
	}
	return SpanContext{}, false
}

// Depth returns the number of open spans on t's stack.
func (t *Tracer) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stack)
}

// remove takes s off the stack together with every span opened after it. It is a
// no-op when s was already removed that way.
func (t *Tracer) remove(s *Span) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == s {
			clear(t.stack[i:])
			t.stack = t.stack[:i]
			return
		}
	}
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
