package world

import (
	"errors"
	"fmt"
)

// Размер чанка фиксирован на этапе компиляции
const (
	ChunkWidth  = 16
	ChunkHeight = 16
	ChunkDepth  = 16
	ChunkVolume = ChunkWidth * ChunkHeight * ChunkDepth
)

// ErrInvalidDimensions возвращается при несогласованных размерах мира или карты
var ErrInvalidDimensions = errors.New("invalid world dimensions")

// Dimensions задаёт размеры мира и карт в вокселях
type Dimensions struct {
	WorldWidth  int
	WorldHeight int
	WorldDepth  int

	MapWidth  int
	MapHeight int
	MapDepth  int
}

// DefaultDimensions возвращает размеры по умолчанию: мир 1024x128x1024, карта 256x128x256
func DefaultDimensions() Dimensions {
	return Dimensions{
		WorldWidth:  1024,
		WorldHeight: 128,
		WorldDepth:  1024,
		MapWidth:    256,
		MapHeight:   128,
		MapDepth:    256,
	}
}

// Validate проверяет, что каждый уровень нацело делится на размер дочернего уровня
func (d Dimensions) Validate() error {
	extents := []struct {
		name          string
		parent, child int
		childName     string
	}{
		{"map width", d.MapWidth, ChunkWidth, "chunk width"},
		{"map height", d.MapHeight, ChunkHeight, "chunk height"},
		{"map depth", d.MapDepth, ChunkDepth, "chunk depth"},
		{"world width", d.WorldWidth, d.MapWidth, "map width"},
		{"world height", d.WorldHeight, d.MapHeight, "map height"},
		{"world depth", d.WorldDepth, d.MapDepth, "map depth"},
	}

	for _, e := range extents {
		if e.parent <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidDimensions, e.name, e.parent)
		}
		if e.parent%e.child != 0 {
			return fmt.Errorf("%w: %s %d is not a multiple of %s %d",
				ErrInvalidDimensions, e.name, e.parent, e.childName, e.child)
		}
	}
	return nil
}

// MapsPerAxis возвращает число карт по каждой оси мира
func (d Dimensions) MapsPerAxis() (x, y, z int) {
	return d.WorldWidth / d.MapWidth, d.WorldHeight / d.MapHeight, d.WorldDepth / d.MapDepth
}

// ChunksPerMap возвращает число чанков по каждой оси карты
func (d Dimensions) ChunksPerMap() (x, y, z int) {
	return d.MapWidth / ChunkWidth, d.MapHeight / ChunkHeight, d.MapDepth / ChunkDepth
}

// Contains проверяет, лежит ли координата внутри мира
func (d Dimensions) Contains(x, y, z int) bool {
	return x >= 0 && x < d.WorldWidth &&
		y >= 0 && y < d.WorldHeight &&
		z >= 0 && z < d.WorldDepth
}
