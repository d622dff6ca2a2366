package world

import (
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/util"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

// World представляет весь объём мира как сетку слотов карт.
// Пустой слот (nil) означает, что тайл целиком состоит из воздуха.
// World не потокобезопасен: все вызовы должны идти из одной горутины.
type World struct {
	dims       Dimensions
	mw, mh, md int // Число карт по осям

	maps      []*Map
	allocated int // Число непустых слотов

	metrics *Metrics
	logger  *logging.Logger
}

// CompactionStats описывает результат OptimiseWorldStorage
type CompactionStats struct {
	ChunksReleased int
	MapsReleased   int
}

// Stats описывает текущее заполнение мира
type Stats struct {
	Maps   int
	Chunks int
	Voxels int
}

// NewWorld создаёт пустой мир с проверенными размерами
func NewWorld(dims Dimensions) (*World, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		dims:   dims,
		logger: logging.GetWorldLogger(),
	}
	w.mw, w.mh, w.md = dims.MapsPerAxis()
	w.maps = make([]*Map, w.mw*w.mh*w.md)

	w.logger.Debug("Создан мир %dx%dx%d (карт %dx%dx%d)",
		dims.WorldWidth, dims.WorldHeight, dims.WorldDepth, w.mw, w.mh, w.md)
	return w, nil
}

// Dimensions возвращает размеры мира
func (w *World) Dimensions() Dimensions {
	return w.dims
}

// SetMetrics подключает метрики. Уже выделенные карты и чанки учитываются сразу.
func (w *World) SetMetrics(metrics *Metrics) {
	w.metrics = metrics
	chunks := 0
	for _, m := range w.maps {
		if m != nil {
			m.metrics = metrics
			chunks += m.ChunkCount()
		}
	}
	metrics.adopt(w.allocated, chunks)
}

// mapSlot возвращает индекс слота карты и локальные координаты внутри неё
func (w *World) mapSlot(x, y, z int) (slot, lx, ly, lz int) {
	d := w.dims
	slot = util.Flatten(x/d.MapWidth, y/d.MapHeight, z/d.MapDepth, w.mh, w.md)
	return slot, x % d.MapWidth, y % d.MapHeight, z % d.MapDepth
}

// mapOrigin возвращает мировые координаты угла карты в слоте
func (w *World) mapOrigin(slot int) vec.Vec3 {
	mx, my, mz := util.Unflatten(slot, w.mh, w.md)
	return vec.Vec3{X: mx * w.dims.MapWidth, Y: my * w.dims.MapHeight, Z: mz * w.dims.MapDepth}
}

func (w *World) allocMap(slot int) *Map {
	d := w.dims
	m := newMapAt(d.MapWidth, d.MapHeight, d.MapDepth, w.mapOrigin(slot), w.metrics)
	w.maps[slot] = m
	w.allocated++
	w.metrics.mapAllocated()
	return m
}

func (w *World) releaseMap(slot int) {
	w.maps[slot] = nil
	w.allocated--
	w.metrics.mapReleased()
}

// SetVoxel записывает воксель по мировым координатам.
// Запись за пределами мира игнорируется.
func (w *World) SetVoxel(x, y, z int, id block.ID) {
	if !w.dims.Contains(x, y, z) {
		w.metrics.writeDropped()
		return
	}

	slot, lx, ly, lz := w.mapSlot(x, y, z)
	m := w.maps[slot]
	if m == nil {
		if id == block.Air {
			return
		}
		m = w.allocMap(slot)
	}

	m.SetVoxel(lx, ly, lz, id)

	if id == block.Air && m.IsEmpty() {
		w.releaseMap(slot)
	}
}

// GetVoxel возвращает воксель по мировым координатам.
// За пределами мира и в отсутствующих картах возвращается воздух.
func (w *World) GetVoxel(x, y, z int) block.ID {
	if !w.dims.Contains(x, y, z) {
		return block.Air
	}
	slot, lx, ly, lz := w.mapSlot(x, y, z)
	m := w.maps[slot]
	if m == nil {
		return block.Air
	}
	return m.GetVoxel(lx, ly, lz)
}

// MapAt возвращает карту по индексам сетки карт или nil
func (w *World) MapAt(mx, my, mz int) *Map {
	if mx < 0 || mx >= w.mw || my < 0 || my >= w.mh || mz < 0 || mz >= w.md {
		return nil
	}
	return w.maps[util.Flatten(mx, my, mz, w.mh, w.md)]
}

// chunkAt возвращает чанк по мировым индексам сетки чанков и мировые
// координаты его угла
func (w *World) chunkAt(cx, cy, cz int) (*Chunk, vec.Vec3) {
	base := vec.Vec3{X: cx * ChunkWidth, Y: cy * ChunkHeight, Z: cz * ChunkDepth}
	if cx < 0 || cy < 0 || cz < 0 || !w.dims.Contains(base.X, base.Y, base.Z) {
		return nil, base
	}
	slot, lx, ly, lz := w.mapSlot(base.X, base.Y, base.Z)
	m := w.maps[slot]
	if m == nil {
		return nil, base
	}
	return m.chunkAt(lx/ChunkWidth, ly/ChunkHeight, lz/ChunkDepth), base
}

// OptimiseWorldStorage освобождает пустые чанки во всех картах, а затем
// пустые карты
func (w *World) OptimiseWorldStorage() CompactionStats {
	var stats CompactionStats
	for slot, m := range w.maps {
		if m == nil {
			continue
		}
		stats.ChunksReleased += m.CheckAllChunks()
		if m.IsEmpty() {
			w.releaseMap(slot)
			stats.MapsReleased++
		}
	}

	w.logger.Debug("Оптимизация хранилища: освобождено чанков %d, карт %d",
		stats.ChunksReleased, stats.MapsReleased)
	return stats
}

// Stats возвращает число карт, чанков и непустых вокселей
func (w *World) Stats() Stats {
	stats := Stats{Maps: w.allocated}
	for _, m := range w.maps {
		if m == nil {
			continue
		}
		stats.Chunks += m.ChunkCount()
		for _, chunk := range m.chunks {
			if chunk != nil {
				stats.Voxels += chunk.Count()
			}
		}
	}
	return stats
}
