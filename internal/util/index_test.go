package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenRowMajor(t *testing.T) {
	assert.Equal(t, 0, Flatten(0, 0, 0, 16, 16))
	assert.Equal(t, 1, Flatten(0, 0, 1, 16, 16))
	assert.Equal(t, 16, Flatten(0, 1, 0, 16, 16))
	assert.Equal(t, 256, Flatten(1, 0, 0, 16, 16))
	assert.Equal(t, 4095, Flatten(15, 15, 15, 16, 16))

	// Неквадратные размеры: H=8, D=16
	assert.Equal(t, 2*8*16+3*16+5, Flatten(2, 3, 5, 8, 16))
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	extents := []struct{ w, h, d int }{
		{16, 16, 16},
		{16, 8, 16},
		{4, 1, 4},
		{2, 3, 5},
	}

	for _, e := range extents {
		for x := 0; x < e.w; x++ {
			for y := 0; y < e.h; y++ {
				for z := 0; z < e.d; z++ {
					i := Flatten(x, y, z, e.h, e.d)
					gx, gy, gz := Unflatten(i, e.h, e.d)
					if gx != x || gy != y || gz != z {
						t.Fatalf("Обратное преобразование %d (h=%d d=%d): ожидалось (%d,%d,%d), получено (%d,%d,%d)",
							i, e.h, e.d, x, y, z, gx, gy, gz)
					}
				}
			}
		}
	}
}

func TestFlattenIsDenseBijection(t *testing.T) {
	const w, h, d = 3, 4, 5
	seen := make([]bool, w*h*d)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for z := 0; z < d; z++ {
				i := Flatten(x, y, z, h, d)
				assert.False(t, seen[i], "индекс %d получен дважды", i)
				seen[i] = true
			}
		}
	}
	for i, ok := range seen {
		assert.True(t, ok, "индекс %d не покрыт", i)
	}
}
