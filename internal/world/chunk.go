package world

import (
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/util"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

// Chunk представляет плотный блок 16x16x16 вокселей.
// Координаты не проверяются: диапазон гарантирует вызывающая карта.
type Chunk struct {
	voxels [ChunkVolume]block.ID
}

// NewChunk создаёт чанк, заполненный воздухом
func NewChunk() *Chunk {
	return &Chunk{}
}

// SetVoxel записывает тип вокселя в локальные координаты чанка
func (c *Chunk) SetVoxel(x, y, z int, id block.ID) {
	c.voxels[util.Flatten(x, y, z, ChunkHeight, ChunkDepth)] = id
}

// GetVoxel возвращает тип вокселя по локальным координатам чанка
func (c *Chunk) GetVoxel(x, y, z int) block.ID {
	return c.voxels[util.Flatten(x, y, z, ChunkHeight, ChunkDepth)]
}

// IsEmpty возвращает true, если все ячейки чанка - воздух
func (c *Chunk) IsEmpty() bool {
	for _, id := range c.voxels {
		if id != block.Air {
			return false
		}
	}
	return true
}

// Count возвращает число непустых вокселей
func (c *Chunk) Count() int {
	n := 0
	for _, id := range c.voxels {
		if id != block.Air {
			n++
		}
	}
	return n
}

// ForEach обходит непустые воксели в порядке плоского индекса
func (c *Chunk) ForEach(fn func(x, y, z int, id block.ID)) {
	for i, id := range c.voxels {
		if id == block.Air {
			continue
		}
		x, y, z := util.Unflatten(i, ChunkHeight, ChunkDepth)
		fn(x, y, z, id)
	}
}
