package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
)

// MetricsServer управляет HTTP-эндпоинтом Prometheus для собственного регистра.
// Регистр содержит метрики Go runtime и процесса; метрики хранилища
// регистрируются вызывающим кодом через Registry().
type MetricsServer struct {
	registry *prometheus.Registry
	server   *http.Server
}

// NewMetricsServer создаёт сервер, но не запускает его
func NewMetricsServer(addr string) *MetricsServer {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ms := &MetricsServer{registry: registry}

	mux := http.NewServeMux()
	mux.Handle("/metrics", ms.Handler())
	ms.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return ms
}

// Registry возвращает регистр для регистрации метрик
func (ms *MetricsServer) Registry() *prometheus.Registry {
	return ms.registry
}

// Handler возвращает HTTP-обработчик /metrics
func (ms *MetricsServer) Handler() http.Handler {
	return promhttp.HandlerFor(ms.registry, promhttp.HandlerOpts{})
}

// Start запускает HTTP-сервер в отдельной горутине.
// Метод неблокирующий.
func (ms *MetricsServer) Start() {
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", ms.server.Addr)
		if err := ms.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}

// Shutdown останавливает HTTP-сервер
func (ms *MetricsServer) Shutdown(ctx context.Context) error {
	return ms.server.Shutdown(ctx)
}
