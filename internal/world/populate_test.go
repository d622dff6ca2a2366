package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

func countByType(w *World) map[block.ID]int {
	counts := make(map[block.ID]int)
	w.ForEachVoxel(func(_ vec.Vec3, id block.ID) {
		counts[id]++
	})
	return counts
}

func TestPopulateFlatScenario(t *testing.T) {
	w := newTestWorld(t, smallDims())

	height := FillColumnMap(32, 32, 10)
	water := NewColumnMap(32, 32)
	trees := NewColumnMap(32, 32)
	trees[15][15] = 10

	// Ствол 4, крона 4
	require.NoError(t, w.Populate(height, trees, water, fixedRand(0)))

	counts := countByType(w)
	assert.Equal(t, 32*32-1, counts[block.Grass])
	assert.Zero(t, counts[block.Water])
	assert.Equal(t, 4, counts[block.TreeTrunk])
	// Слои y=14 (9x9) и y=15 (7x7); остальные выше мира
	assert.Equal(t, 81+49, counts[block.Leaf])

	for _, p := range w.Positions()[block.Grass] {
		require.Equal(t, 10, p.Y)
	}
	for y := 10; y < 14; y++ {
		assert.Equal(t, block.TreeTrunk, w.GetVoxel(15, y, 15))
	}

	// Крона пересекает границы карт и не обрезается
	assert.Equal(t, block.Leaf, w.GetVoxel(11, 14, 11))
	assert.Equal(t, block.Leaf, w.GetVoxel(19, 14, 19))
	assert.Equal(t, block.Leaf, w.GetVoxel(18, 15, 12))
	assert.Equal(t, block.Air, w.GetVoxel(19, 15, 15))

	w.OptimiseWorldStorage()
	requireCompact(t, w)

	// Все непустые воксели лежат в нижнем слое чанков 2x2
	stats := w.Stats()
	assert.Equal(t, 4, stats.Maps)
	assert.Equal(t, 4, stats.Chunks)
}

func TestPopulateTreeContainment(t *testing.T) {
	dims := Dimensions{
		WorldWidth: 64, WorldHeight: 64, WorldDepth: 64,
		MapWidth: 32, MapHeight: 32, MapDepth: 32,
	}
	w := newTestWorld(t, dims)

	trees := NewColumnMap(64, 64)
	trees[31][31] = 20
	require.NoError(t, w.Populate(FillColumnMap(64, 64, 19), trees, NewColumnMap(64, 64), rand.New(rand.NewSource(7))))

	expected := rand.New(rand.NewSource(7))
	trunk := minTrunkHeight + expected.Intn(trunkHeightSpan)
	canopy := minCanopySize + expected.Intn(canopySizeSpan)

	// Непрерывный ствол от основания
	for y := 20; y < 20+trunk; y++ {
		require.Equal(t, block.TreeTrunk, w.GetVoxel(31, y, 31), "y=%d", y)
	}
	assert.Equal(t, block.Grass, w.GetVoxel(31, 19, 31))

	top := 20 + trunk
	extent := make(map[int]int)
	perLayer := make(map[int]int)
	for _, p := range w.Positions()[block.Leaf] {
		layer := p.Y - top
		require.True(t, layer >= 0 && layer <= canopy, "лист вне кроны: %s", p)

		half := canopy - layer
		dx, dz := abs(p.X-31), abs(p.Z-31)
		require.LessOrEqual(t, dx, half)
		require.LessOrEqual(t, dz, half)

		perLayer[layer]++
		if dx > extent[layer] {
			extent[layer] = dx
		}
	}

	for layer := 0; layer <= canopy; layer++ {
		side := 2*(canopy-layer) + 1
		assert.Equal(t, side*side, perLayer[layer], "layer %d", layer)
		if layer > 0 {
			assert.Less(t, extent[layer], extent[layer-1])
		}
	}
}

func TestPopulateSkipsTilesOutsideElevation(t *testing.T) {
	dims := Dimensions{
		WorldWidth: 32, WorldHeight: 32, WorldDepth: 32,
		MapWidth: 16, MapHeight: 16, MapDepth: 16,
	}
	w := newTestWorld(t, dims)

	height := NewColumnMap(32, 32)
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			height[x][z] = 5
			if x >= 16 {
				height[x][z] = 20
			}
		}
	}
	require.NoError(t, w.Populate(height, nil, NewColumnMap(32, 32), nil))

	assert.Equal(t, 4, w.Stats().Maps)
	assert.NotNil(t, w.MapAt(0, 0, 1))
	assert.Nil(t, w.MapAt(0, 1, 1))
	assert.NotNil(t, w.MapAt(1, 1, 0))
	assert.Nil(t, w.MapAt(1, 0, 0))
	assert.Equal(t, block.Grass, w.GetVoxel(20, 20, 3))
	assert.Equal(t, block.Grass, w.GetVoxel(3, 5, 20))
}

func TestPopulateWaterOverGrass(t *testing.T) {
	w := newTestWorld(t, smallDims())

	height := FillColumnMap(32, 32, 4)
	water := FillColumnMap(32, 32, 4)
	require.NoError(t, w.Populate(height, nil, water, nil))

	counts := countByType(w)
	assert.Zero(t, counts[block.Grass])
	assert.Equal(t, 32*32, counts[block.Water])
}

func TestPopulateErrors(t *testing.T) {
	w := newTestWorld(t, smallDims())
	full := FillColumnMap(32, 32, 1)
	short := FillColumnMap(31, 32, 1)

	assert.ErrorIs(t, w.Populate(short, nil, full, nil), ErrColumnMapSize)
	assert.ErrorIs(t, w.Populate(full, nil, short, nil), ErrColumnMapSize)
	assert.ErrorIs(t, w.Populate(full, short, full, fixedRand(0)), ErrColumnMapSize)
	assert.ErrorIs(t, w.Populate(full, full, full, nil), ErrNoRand)
	assert.Equal(t, Stats{}, w.Stats())
}

func buildTestMaps() (height, trees, water ColumnMap) {
	height = NewColumnMap(64, 64)
	trees = NewColumnMap(64, 64)
	water = NewColumnMap(64, 64)
	for x := 0; x < 64; x++ {
		for z := 0; z < 64; z++ {
			h := 5 + (x*3+z*7)%20
			height[x][z] = h
			if h < 12 {
				water[x][z] = 12
			} else if (x*64+z)%9 == 0 {
				trees[x][z] = h + 1
			}
		}
	}
	return height, trees, water
}

func TestPopulateIsReproducible(t *testing.T) {
	dims := Dimensions{
		WorldWidth: 64, WorldHeight: 32, WorldDepth: 64,
		MapWidth: 32, MapHeight: 32, MapDepth: 32,
	}
	build := func(seed int64) *World {
		w := newTestWorld(t, dims)
		height, trees, water := buildTestMaps()
		require.NoError(t, w.Populate(height, trees, water, rand.New(rand.NewSource(seed))))
		return w
	}

	a, b := build(99), build(99)
	assert.Equal(t, a.Digest(), b.Digest())
	assert.Equal(t, a.Positions(), b.Positions())
	assert.Equal(t, a.Stats(), b.Stats())

	c := build(100)
	assert.NotEqual(t, a.Digest(), c.Digest())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
