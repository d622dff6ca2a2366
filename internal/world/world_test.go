package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

func TestWorldSetGetAcrossMaps(t *testing.T) {
	w := newTestWorld(t, smallDims())

	points := map[vec.Vec3]block.ID{
		{X: 0, Y: 0, Z: 0}:    block.Grass,
		{X: 15, Y: 15, Z: 15}: block.Water,
		{X: 16, Y: 1, Z: 0}:   block.TreeTrunk,
		{X: 31, Y: 15, Z: 31}: block.Leaf,
	}
	for p, id := range points {
		w.SetVoxel(p.X, p.Y, p.Z, id)
	}
	for p, id := range points {
		assert.Equal(t, id, w.GetVoxel(p.X, p.Y, p.Z), p.String())
	}

	stats := w.Stats()
	assert.Equal(t, Stats{Maps: 3, Chunks: 3, Voxels: 4}, stats)
	assert.NotNil(t, w.MapAt(1, 0, 0))
	assert.NotNil(t, w.MapAt(1, 0, 1))
	assert.Nil(t, w.MapAt(0, 0, 1))
	assert.Nil(t, w.MapAt(2, 0, 0))
}

func TestWorldWriteReadIdentity(t *testing.T) {
	w := newTestWorld(t, smallDims())
	rng := rand.New(rand.NewSource(42))
	types := []block.ID{block.Grass, block.Water, block.TreeTrunk, block.Leaf}

	for i := 0; i < 500; i++ {
		x, y, z := rng.Intn(32), rng.Intn(16), rng.Intn(32)
		id := types[rng.Intn(len(types))]
		w.SetVoxel(x, y, z, id)
		require.Equal(t, id, w.GetVoxel(x, y, z))
	}
}

func TestWorldReleasesMapWhenEmpty(t *testing.T) {
	w := newTestWorld(t, smallDims())

	w.SetVoxel(20, 5, 20, block.Grass)
	w.SetVoxel(21, 5, 20, block.Grass)
	require.Equal(t, 1, w.Stats().Maps)

	w.SetVoxel(20, 5, 20, block.Air)
	assert.Equal(t, 1, w.Stats().Maps)

	w.SetVoxel(21, 5, 20, block.Air)
	assert.Equal(t, Stats{}, w.Stats())
	assert.Nil(t, w.MapAt(1, 0, 1))
}

func TestWorldOutOfBoundsIsSafe(t *testing.T) {
	w := newTestWorld(t, smallDims())
	w.SetVoxel(0, 0, 0, block.Grass)

	outside := []vec.Vec3{
		{X: -1, Y: 0, Z: 0}, {X: 32, Y: 0, Z: 0},
		{X: 0, Y: -1, Z: 0}, {X: 0, Y: 16, Z: 0},
		{X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: 32},
		{X: -100, Y: 500, Z: 1 << 20},
	}
	for _, p := range outside {
		assert.NotPanics(t, func() { w.SetVoxel(p.X, p.Y, p.Z, block.Leaf) })
		assert.Equal(t, block.Air, w.GetVoxel(p.X, p.Y, p.Z))
	}

	assert.Equal(t, Stats{Maps: 1, Chunks: 1, Voxels: 1}, w.Stats())
	assert.Equal(t, block.Grass, w.GetVoxel(0, 0, 0))
}

func TestWorldClearingChunkEmptiesSlot(t *testing.T) {
	w := newTestWorld(t, smallDims())

	for x := 16; x < 32; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				w.SetVoxel(x, y, z, block.Grass)
			}
		}
	}
	require.Equal(t, ChunkVolume, w.Stats().Voxels)

	for x := 16; x < 32; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				w.SetVoxel(x, y, z, block.Air)
			}
		}
	}
	assert.Equal(t, Stats{}, w.Stats())
	requireCompact(t, w)
}

func TestOptimiseWorldStorage(t *testing.T) {
	w := newTestWorld(t, smallDims())
	w.SetVoxel(1, 1, 1, block.Grass)
	w.SetVoxel(17, 1, 1, block.Grass)
	w.SetVoxel(18, 1, 1, block.Water)

	// Опустошаем чанки в обход SetVoxel, как после массовой записи
	w.MapAt(0, 0, 0).chunks[0].SetVoxel(1, 1, 1, block.Air)
	w.MapAt(1, 0, 0).chunks[0].SetVoxel(1, 1, 1, block.Air)

	stats := w.OptimiseWorldStorage()
	assert.Equal(t, CompactionStats{ChunksReleased: 1, MapsReleased: 1}, stats)
	assert.Equal(t, Stats{Maps: 1, Chunks: 1, Voxels: 1}, w.Stats())
	requireCompact(t, w)

	// Повторная оптимизация ничего не освобождает
	assert.Equal(t, CompactionStats{}, w.OptimiseWorldStorage())
}

func TestCompactionInvariantAfterRandomEdits(t *testing.T) {
	w := newTestWorld(t, smallDims())
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		id := block.Air
		if rng.Intn(2) == 0 {
			id = block.Leaf
		}
		w.SetVoxel(rng.Intn(34)-1, rng.Intn(18)-1, rng.Intn(34)-1, id)
	}
	w.OptimiseWorldStorage()
	requireCompact(t, w)

	// Каждый отсутствующий слот действительно пуст
	for mx := 0; mx < 2; mx++ {
		for mz := 0; mz < 2; mz++ {
			if w.MapAt(mx, 0, mz) != nil {
				continue
			}
			for x := mx * 16; x < mx*16+16; x++ {
				for z := mz * 16; z < mz*16+16; z++ {
					for y := 0; y < 16; y++ {
						require.Equal(t, block.Air, w.GetVoxel(x, y, z))
					}
				}
			}
		}
	}
}
