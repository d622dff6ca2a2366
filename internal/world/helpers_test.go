package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedRand всегда возвращает одно значение (по модулю n)
type fixedRand int

func (r fixedRand) Intn(n int) int {
	return int(r) % n
}

func smallDims() Dimensions {
	return Dimensions{
		WorldWidth: 32, WorldHeight: 16, WorldDepth: 32,
		MapWidth: 16, MapHeight: 16, MapDepth: 16,
	}
}

func newTestWorld(t *testing.T, dims Dimensions) *World {
	t.Helper()
	w, err := NewWorld(dims)
	require.NoError(t, err)
	return w
}

// requireCompact проверяет, что каждый выделенный слот хранит хотя бы один воксель
func requireCompact(t *testing.T, w *World) {
	t.Helper()
	maps := 0
	for _, m := range w.maps {
		if m == nil {
			continue
		}
		maps++
		require.False(t, m.IsEmpty(), "пустая карта в слоте")
		chunks := 0
		for _, c := range m.chunks {
			if c == nil {
				continue
			}
			chunks++
			require.False(t, c.IsEmpty(), "пустой чанк в слоте")
		}
		require.Equal(t, chunks, m.ChunkCount())
	}
	require.Equal(t, maps, w.allocated)
}
