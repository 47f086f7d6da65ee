package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/longtrace/observability"
	"github.com/aalemi-dev/longtrace/store"
)

func TestNewMetrics_NoServerByDefault(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{})
	assert.NotNil(t, m.Registry)
	assert.Nil(t, m.Server)
}

func TestNewMetrics_Server(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{Address: ":0"})
	require.NotNil(t, m.Server)
	assert.Equal(t, ":0", m.Server.Addr)
}

func TestObserveOperation_Success(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{})

	m.ObserveOperation(observability.OperationContext{
		Component: "tracer",
		Operation: "flush",
		Resource:  "20260309",
		Duration:  12 * time.Millisecond,
		Size:      10,
		Metadata:  map[string]interface{}{"pending": 3},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("tracer", "flush", "ok")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.records.WithLabelValues("tracer", "flush")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pending))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestObserveOperation_ErrorStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: refused", store.ErrConnection), "connection_error"},
		{fmt.Errorf("%w: duplicate key", store.ErrWrite), "write_error"},
		{errors.New("odd"), "error"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			m := NewMetrics(Config{})
			m.ObserveOperation(observability.OperationContext{
				Component: "store",
				Operation: "write_batch",
				Error:     tc.err,
				Size:      5,
			})
			assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("store", "write_batch", tc.want)))
			assert.Equal(t, 0.0, testutil.ToFloat64(m.records.WithLabelValues("store", "write_batch")))
		})
	}
}

func TestObserveOperation_Drop(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{})

	m.ObserveOperation(observability.OperationContext{Component: "tracer", Operation: "drop", Size: 7})
	m.ObserveOperation(observability.OperationContext{Component: "tracer", Operation: "drop", Size: 3})

	assert.Equal(t, 10.0, testutil.ToFloat64(m.dropped))
	assert.Equal(t, 0, testutil.CollectAndCount(m.operations))
}

func TestHandler_ExposesServiceLabel(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{ServiceName: "checkout", Namespace: "lt"})
	m.ObserveOperation(observability.OperationContext{Component: "tracer", Operation: "flush", Size: 1})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `lt_operations_total{component="tracer",operation="flush",service="checkout",status="ok"} 1`), text)
	assert.Contains(t, text, "lt_pending_records")
}

func TestNewMetrics_RuntimeCollectors(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{RuntimeCollectors: true})
	families, err := m.Registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LONGTRACE_METRICS_ADDRESS", ":9464")
	t.Setenv("LONGTRACE_METRICS_SERVICE_NAME", "checkout")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9464", cfg.Address)
	assert.Equal(t, DefaultNamespace, cfg.Namespace)
	assert.Equal(t, "checkout", cfg.ServiceName)
	assert.False(t, cfg.RuntimeCollectors)
}
