package tracer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/longtrace/store"
)

// resetRegistry clears the process-wide state before and after a test. Tests that
// use it must not run in parallel.
func resetRegistry(t *testing.T) {
	t.Helper()
	clearRegistry()
	t.Cleanup(clearRegistry)
}

func clearRegistry() {
	initMu.Lock()
	defer initMu.Unlock()
	current.Store(nil)
}

// fakeWriter keeps every written batch in memory.
type fakeWriter struct {
	mu        sync.Mutex
	ensureErr error
	writeErr  error
	ensured   []string
	batches   [][]store.Record
	closed    bool
}

func (w *fakeWriter) EnsureDatabase(_ context.Context, candidate string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensured = append(w.ensured, candidate)
	if w.ensureErr != nil {
		return "", w.ensureErr
	}
	return store.SanitizeDatabaseName(candidate), nil
}

func (w *fakeWriter) WriteBatch(ctx context.Context, records []store.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrConnection, err)
	}
	if w.writeErr != nil {
		return w.writeErr
	}
	w.batches = append(w.batches, append([]store.Record(nil), records...))
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) failWrites(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeErr = err
}

func (w *fakeWriter) batchSizes() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	sizes := make([]int, len(w.batches))
	for i, b := range w.batches {
		sizes[i] = len(b)
	}
	return sizes
}

func (w *fakeWriter) records() []store.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	var all []store.Record
	for _, b := range w.batches {
		all = append(all, b...)
	}
	return all
}

func (w *fakeWriter) spans() []*store.SpanRecord {
	var spans []*store.SpanRecord
	for _, r := range w.records() {
		if s, ok := r.(*store.SpanRecord); ok {
			spans = append(spans, s)
		}
	}
	return spans
}

func (w *fakeWriter) logs() []*store.LogRecord {
	var logs []*store.LogRecord
	for _, r := range w.records() {
		if l, ok := r.(*store.LogRecord); ok {
			logs = append(logs, l)
		}
	}
	return logs
}

// initFake initializes the registry with a fresh fakeWriter.
func initFake(t *testing.T, batchSize int, opts ...Option) *fakeWriter {
	t.Helper()
	resetRegistry(t)
	w := &fakeWriter{}
	_, err := InitializeWithWriter(context.Background(), w, Config{BatchSize: batchSize, DatabaseName: "traces"}, opts...)
	require.NoError(t, err)
	return w
}
