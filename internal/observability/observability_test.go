package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServerServesRegistry(t *testing.T) {
	ms := NewMetricsServer("127.0.0.1:0")
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "voxel_test_total",
		Help: "test counter",
	})
	ms.Registry().MustRegister(counter)
	counter.Add(3)

	srv := httptest.NewServer(ms.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "voxel_test_total 3")
	assert.Contains(t, string(body), "go_goroutines")

	// Не запущенный сервер останавливается без ошибки
	assert.NoError(t, ms.Shutdown(context.Background()))
}

func TestReadProcessStats(t *testing.T) {
	stats, err := ReadProcessStats()
	require.NoError(t, err)
	assert.NotZero(t, stats.HeapAlloc)
	assert.NotZero(t, stats.RSS)
	assert.Contains(t, stats.String(), "RSS")
}

func TestTracerWithoutInit(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "noop")
	defer span.End()
	assert.NotNil(t, span)
}
