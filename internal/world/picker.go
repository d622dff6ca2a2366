package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/physics"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

// DefaultPickRadius - окрестность 3x3x3 чанка вокруг начала луча
const DefaultPickRadius = 1

// Hit описывает ближайший воксель, пересечённый лучом
type Hit struct {
	Voxel vec.Vec3   // Мировые координаты вокселя
	Type  block.ID   // Тип вокселя
	TNear float64    // Параметр входа луча в воксель
	TFar  float64    // Параметр выхода луча из вокселя
	Point mgl64.Vec3 // Точка входа
}

// Picker ищет воксель под лучом в окрестности чанка, содержащего начало луча
type Picker struct {
	Radius int // Радиус окрестности в чанках
}

// NewPicker создаёт пикер с указанным радиусом (отрицательный заменяется нулём)
func NewPicker(radius int) Picker {
	if radius < 0 {
		radius = 0
	}
	return Picker{Radius: radius}
}

// Pick проверяет все непустые воксели в чанках окрестности и возвращает
// попадание с наименьшим tNear. При равенстве выигрывает найденный первым.
func (p Picker) Pick(w *World, ray physics.Ray) (Hit, bool) {
	centre := vec.Floor(ray.Origin)
	ccx := floorDiv(centre.X, ChunkWidth)
	ccy := floorDiv(centre.Y, ChunkHeight)
	ccz := floorDiv(centre.Z, ChunkDepth)

	var best Hit
	found := false

	for dx := -p.Radius; dx <= p.Radius; dx++ {
		for dy := -p.Radius; dy <= p.Radius; dy++ {
			for dz := -p.Radius; dz <= p.Radius; dz++ {
				chunk, base := w.chunkAt(ccx+dx, ccy+dy, ccz+dz)
				if chunk == nil {
					continue
				}
				chunk.ForEach(func(x, y, z int, id block.ID) {
					pos := base.Add(vec.Vec3{X: x, Y: y, Z: z})
					tNear, tFar, ok := physics.VoxelBox(pos).IntersectRay(ray)
					if !ok || (found && tNear >= best.TNear) {
						return
					}
					best = Hit{Voxel: pos, Type: id, TNear: tNear, TFar: tFar, Point: ray.At(tNear)}
					found = true
				})
			}
		}
	}

	w.metrics.pick(found)
	return best, found
}

// Pick ищет воксель под лучом с радиусом по умолчанию
func (w *World) Pick(ray physics.Ray) (Hit, bool) {
	return NewPicker(DefaultPickRadius).Pick(w, ray)
}

// floorDiv делит с округлением вниз для отрицательных координат
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
