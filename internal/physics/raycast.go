package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
)

// Ray представляет луч с началом Origin и направлением Direction.
// Direction не обязан быть нормализованным: t измеряется в его длинах.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At возвращает точку луча для параметра t
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB представляет выровненный по осям параллелепипед
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// VoxelBox возвращает куб единичного размера с центром в вокселе
func VoxelBox(center vec.Vec3) AABB {
	c := center.ToFloat()
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Contains проверяет, лежит ли точка внутри параллелепипеда (включая границу)
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps проверяет пересечение двух параллелепипедов
func (b AABB) Overlaps(other AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] <= other.Min[i] || b.Min[i] >= other.Max[i] {
			return false
		}
	}
	return true
}

// IntersectRay пересекает луч с параллелепипедом методом плит.
// Попадание засчитывается, только если tNear < tFar и tNear > 0:
// параллелепипед, содержащий начало луча, не считается попаданием.
// Нулевая компонента направления означает луч, параллельный плите:
// промах, если начало вне плиты, иначе ось не ограничивает t.
func (b AABB) IntersectRay(r Ray) (tNear, tFar float64, ok bool) {
	tNear = math.Inf(-1)
	tFar = math.Inf(1)

	for i := 0; i < 3; i++ {
		if r.Direction[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, 0, false
			}
			continue
		}

		tMin := (b.Min[i] - r.Origin[i]) / r.Direction[i]
		tMax := (b.Max[i] - r.Origin[i]) / r.Direction[i]
		t1 := math.Min(tMin, tMax)
		t2 := math.Max(tMin, tMax)

		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
	}

	if tNear < tFar && tNear > 0 {
		return tNear, tFar, true
	}
	return 0, 0, false
}
