package world

import "github.com/prometheus/client_golang/prometheus"

// Metrics содержит Prometheus-метрики хранилища вокселей.
// Нулевой указатель допустим: все методы в этом случае ничего не делают.
type Metrics struct {
	mapsAllocated   prometheus.Gauge
	chunksAllocated prometheus.Gauge
	mapsReleased    prometheus.Counter
	chunksReleased  prometheus.Counter
	writesDropped   prometheus.Counter
	picks           *prometheus.CounterVec
}

// NewMetrics создаёт метрики и регистрирует их в reg (если reg не nil)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mapsAllocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_world_maps_allocated",
			Help: "Number of map slots currently holding a map",
		}),
		chunksAllocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_world_chunks_allocated",
			Help: "Number of chunk slots currently holding a chunk",
		}),
		mapsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_world_maps_released_total",
			Help: "Total number of maps released because they became empty",
		}),
		chunksReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_world_chunks_released_total",
			Help: "Total number of chunks released because they became empty",
		}),
		writesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_world_writes_dropped_total",
			Help: "Total number of voxel writes outside the store bounds",
		}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voxel_world_picks_total",
			Help: "Total number of ray picks by result",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.mapsAllocated,
			m.chunksAllocated,
			m.mapsReleased,
			m.chunksReleased,
			m.writesDropped,
			m.picks,
		)
	}
	return m
}

func (m *Metrics) mapAllocated() {
	if m != nil {
		m.mapsAllocated.Inc()
	}
}

func (m *Metrics) mapReleased() {
	if m != nil {
		m.mapsAllocated.Dec()
		m.mapsReleased.Inc()
	}
}

func (m *Metrics) chunkAllocated() {
	if m != nil {
		m.chunksAllocated.Inc()
	}
}

func (m *Metrics) chunkReleased() {
	if m != nil {
		m.chunksAllocated.Dec()
		m.chunksReleased.Inc()
	}
}

func (m *Metrics) writeDropped() {
	if m != nil {
		m.writesDropped.Inc()
	}
}

func (m *Metrics) pick(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.picks.WithLabelValues(result).Inc()
}

// adopt учитывает уже существующие карты и чанки при подключении метрик
func (m *Metrics) adopt(maps, chunks int) {
	if m != nil {
		m.mapsAllocated.Add(float64(maps))
		m.chunksAllocated.Add(float64(chunks))
	}
}
