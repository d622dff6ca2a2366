package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума по умолчанию
const (
	DefaultNoiseAlpha   = 2.0 // Сглаживание шума
	DefaultNoiseBeta    = 2.0 // Частота шума
	DefaultNoiseOctaves = 3   // Количество октав внутри одного вызова perlin
)

// Noise оборачивает генератор шума Перлина с фиксированным сидом.
// В отличие от глобального генератора, каждый экземпляр детерминирован
// и не зависит от других генераторов в процессе.
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума Перлина с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(DefaultNoiseAlpha, DefaultNoiseBeta, DefaultNoiseOctaves, seed),
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// Signed возвращает значение шума, ограниченное диапазоном от -1 до 1
func (n *Noise) Signed(x, y float64) float64 {
	v := n.perlin.Noise2D(x, y)
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Noise2D возвращает значение шума для указанных координат (от 0 до 1)
func (n *Noise) Noise2D(x, y float64) float64 {
	// Значение шума лежит примерно в диапазоне от -1 до 1
	v := (n.perlin.Noise2D(x, y) + 1.0) / 2.0

	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
