package world

import (
	"fmt"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/util"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

// Map представляет тайл мира: сетку слотов чанков.
// Пустой слот (nil) означает, что область целиком состоит из воздуха.
type Map struct {
	width, height, depth int // Размер карты в вокселях
	cw, ch, cd           int // Число чанков по осям

	origin vec.Vec3 // Положение карты в мире (нулевое для отдельной карты)

	chunks    []*Chunk
	allocated int // Число непустых слотов

	metrics *Metrics
}

// NewMap создаёт отдельную карту с началом координат в нуле
func NewMap(width, height, depth int) (*Map, error) {
	for _, e := range []struct {
		name          string
		extent, chunk int
	}{
		{"width", width, ChunkWidth},
		{"height", height, ChunkHeight},
		{"depth", depth, ChunkDepth},
	} {
		if e.extent <= 0 || e.extent%e.chunk != 0 {
			return nil, fmt.Errorf("%w: map %s %d must be a positive multiple of %d",
				ErrInvalidDimensions, e.name, e.extent, e.chunk)
		}
	}
	return newMapAt(width, height, depth, vec.Vec3{}, nil), nil
}

// newMapAt создаёт карту мира с заданным началом координат
func newMapAt(width, height, depth int, origin vec.Vec3, metrics *Metrics) *Map {
	m := &Map{
		width:   width,
		height:  height,
		depth:   depth,
		cw:      width / ChunkWidth,
		ch:      height / ChunkHeight,
		cd:      depth / ChunkDepth,
		origin:  origin,
		metrics: metrics,
	}
	m.chunks = make([]*Chunk, m.cw*m.ch*m.cd)
	return m
}

// Origin возвращает мировые координаты угла карты
func (m *Map) Origin() vec.Vec3 {
	return m.origin
}

// Size возвращает размер карты в вокселях
func (m *Map) Size() (width, height, depth int) {
	return m.width, m.height, m.depth
}

// ChunkCount возвращает число выделенных чанков
func (m *Map) ChunkCount() int {
	return m.allocated
}

// contains проверяет, лежит ли локальная координата внутри карты
func (m *Map) contains(x, y, z int) bool {
	return x >= 0 && x < m.width &&
		y >= 0 && y < m.height &&
		z >= 0 && z < m.depth
}

// chunkSlot возвращает индекс слота чанка для локальной координаты карты
func (m *Map) chunkSlot(x, y, z int) int {
	return util.Flatten(x/ChunkWidth, y/ChunkHeight, z/ChunkDepth, m.ch, m.cd)
}

// SetVoxel записывает воксель по локальным координатам карты.
// Запись за пределами карты игнорируется.
func (m *Map) SetVoxel(x, y, z int, id block.ID) {
	if !m.contains(x, y, z) {
		m.metrics.writeDropped()
		return
	}

	slot := m.chunkSlot(x, y, z)
	chunk := m.chunks[slot]
	if chunk == nil {
		// Воздух в отсутствующий чанк ничего не меняет
		if id == block.Air {
			return
		}
		chunk = NewChunk()
		m.chunks[slot] = chunk
		m.allocated++
		m.metrics.chunkAllocated()
	}

	chunk.SetVoxel(x%ChunkWidth, y%ChunkHeight, z%ChunkDepth, id)

	// Только запись воздуха может опустошить чанк
	if id == block.Air && chunk.IsEmpty() {
		m.releaseChunk(slot)
	}
}

// GetVoxel возвращает воксель по локальным координатам карты.
// За пределами карты и в отсутствующих чанках возвращается воздух.
func (m *Map) GetVoxel(x, y, z int) block.ID {
	if !m.contains(x, y, z) {
		return block.Air
	}
	chunk := m.chunks[m.chunkSlot(x, y, z)]
	if chunk == nil {
		return block.Air
	}
	return chunk.GetVoxel(x%ChunkWidth, y%ChunkHeight, z%ChunkDepth)
}

func (m *Map) releaseChunk(slot int) {
	m.chunks[slot] = nil
	m.allocated--
	m.metrics.chunkReleased()
}

// Populate заполняет карту по картам высот, воды и деревьев.
// Высоты глобальные: карта вычитает Y своего начала координат.
// Столбцы, высота которых не попадает в карту, пропускаются.
// Если trees не nil, выполняется PlaceScenery. В конце вызывается CheckAllChunks.
func (m *Map) Populate(height, water, trees ColumnMap, rng Rand) error {
	if err := height.checkCovers("height", m.width, m.depth); err != nil {
		return err
	}
	if err := water.checkCovers("water", m.width, m.depth); err != nil {
		return err
	}
	if trees != nil {
		if err := trees.checkCovers("tree", m.width, m.depth); err != nil {
			return err
		}
		if rng == nil {
			return ErrNoRand
		}
	}

	for z := 0; z < m.depth; z++ {
		for x := 0; x < m.width; x++ {
			if y := height[x][z] - m.origin.Y; y >= 0 && y < m.height {
				m.SetVoxel(x, y, z, block.Grass)
			}
			if level := water[x][z]; level != NoColumn {
				if y := level - m.origin.Y; y >= 0 && y < m.height {
					m.SetVoxel(x, y, z, block.Water)
				}
			}
		}
	}

	if trees != nil {
		m.PlaceScenery(trees, rng)
	}

	m.CheckAllChunks()
	return nil
}

// PlaceScenery сажает деревья только внутри этой карты.
// Крона, выходящая за край карты, обрезается. Для деревьев на границах
// тайлов используйте World.PlaceScenery.
func (m *Map) PlaceScenery(trees ColumnMap, rng Rand) int {
	width, depth := m.width, m.depth
	if trees.Width() < width {
		width = trees.Width()
	}
	if trees.Depth() < depth {
		depth = trees.Depth()
	}
	return placeForest(m.SetVoxel, trees, width, depth, m.origin.Y, rng)
}

// CheckAllChunks освобождает все пустые чанки и возвращает их число
func (m *Map) CheckAllChunks() int {
	released := 0
	for slot, chunk := range m.chunks {
		if chunk != nil && chunk.IsEmpty() {
			m.releaseChunk(slot)
			released++
		}
	}
	return released
}

// IsEmpty возвращает true, если в карте нет ни одного непустого вокселя
func (m *Map) IsEmpty() bool {
	if m.allocated == 0 {
		return true
	}
	for _, chunk := range m.chunks {
		if chunk != nil && !chunk.IsEmpty() {
			return false
		}
	}
	return true
}

// ForEachVoxel обходит непустые воксели карты в локальных координатах:
// сначала по слотам чанков, затем по плоскому индексу внутри чанка.
func (m *Map) ForEachVoxel(fn func(x, y, z int, id block.ID)) {
	for slot, chunk := range m.chunks {
		if chunk == nil {
			continue
		}
		cx, cy, cz := util.Unflatten(slot, m.ch, m.cd)
		bx, by, bz := cx*ChunkWidth, cy*ChunkHeight, cz*ChunkDepth
		chunk.ForEach(func(x, y, z int, id block.ID) {
			fn(bx+x, by+y, bz+z, id)
		})
	}
}

// chunkAt возвращает чанк по индексам сетки чанков карты
func (m *Map) chunkAt(cx, cy, cz int) *Chunk {
	if cx < 0 || cx >= m.cw || cy < 0 || cy >= m.ch || cz < 0 || cz >= m.cd {
		return nil
	}
	return m.chunks[util.Flatten(cx, cy, cz, m.ch, m.cd)]
}
