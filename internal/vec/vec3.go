package vec

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется как координата вокселя в мире.
type Vec3 struct {
	X int
	Y int
	Z int
}

// DistanceSq возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceSq(other Vec3) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// ToFloat преобразует в вектор с плавающей точкой (центр вокселя)
func (v Vec3) ToFloat() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Floor возвращает целочисленную координату вокселя, содержащего точку p.
// Центр вокселя лежит в целой точке, поэтому граница проходит по +-0.5.
func Floor(p mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Floor(p[0] + 0.5)),
		Y: int(math.Floor(p[1] + 0.5)),
		Z: int(math.Floor(p[2] + 0.5)),
	}
}

// String возвращает строковое представление "(x,y,z)"
func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
