package terrain

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/util"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world"
)

// Веса октав шума (от низкой частоты к высокой)
var octaveWeights = [...]float64{1.00, 0.50, 0.25, 0.13, 0.06, 0.03}

// MaxOctaves - максимальное число октав генератора
const MaxOctaves = len(octaveWeights)

// Generator генерирует карты высот, воды и деревьев для заполнения мира
type Generator struct {
	Seed        int64   // Сид шума и расстановки деревьев
	Scale       float64 // Множитель частоты шума
	Octaves     int     // Число октав (от 1 до MaxOctaves)
	Exponent    float64 // Степень перераспределения высот
	MaxHeight   int     // Максимальная высота поверхности
	WaterLevel  int     // Уровень воды; 0 отключает воду
	TreeDensity float64 // Вероятность дерева на столбце суши (от 0 до 1)

	logger *logging.Logger
}

// Maps содержит сгенерированные карты столбцов
type Maps struct {
	Height world.ColumnMap
	Water  world.ColumnMap
	Tree   world.ColumnMap
}

// NewGenerator создаёт генератор с настройками по умолчанию
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:        seed,
		Scale:       1.0,
		Octaves:     MaxOctaves,
		Exponent:    4.0,
		MaxHeight:   63,
		WaterLevel:  18,
		TreeDensity: 0.02,
		logger:      logging.GetTerrainLogger(),
	}
}

// Validate проверяет параметры генератора
func (g *Generator) Validate() error {
	if g.Scale <= 0 {
		return fmt.Errorf("terrain scale must be positive, got %v", g.Scale)
	}
	if g.Octaves < 1 || g.Octaves > MaxOctaves {
		return fmt.Errorf("terrain octaves must be in [1, %d], got %d", MaxOctaves, g.Octaves)
	}
	if g.Exponent <= 0 {
		return fmt.Errorf("terrain exponent must be positive, got %v", g.Exponent)
	}
	if g.MaxHeight < 1 {
		return fmt.Errorf("terrain max height must be at least 1, got %d", g.MaxHeight)
	}
	if g.WaterLevel < 0 {
		return fmt.Errorf("terrain water level must not be negative, got %d", g.WaterLevel)
	}
	if g.TreeDensity < 0 || g.TreeDensity > 1 {
		return fmt.Errorf("terrain tree density must be in [0, 1], got %v", g.TreeDensity)
	}
	return nil
}

// Generate строит карты размером width x depth.
// Высоты нормализуются в диапазон [1, MaxHeight]; вода ставится на уровне
// WaterLevel там, где поверхность ниже него; деревья растут на суше выше воды.
func (g *Generator) Generate(width, depth int) (Maps, error) {
	if width < 1 || depth < 1 {
		return Maps{}, fmt.Errorf("terrain size must be positive, got %dx%d", width, depth)
	}
	if err := g.Validate(); err != nil {
		return Maps{}, err
	}

	elevation := g.elevation(width, depth)

	maps := Maps{
		Height: world.NewColumnMap(width, depth),
		Water:  world.NewColumnMap(width, depth),
		Tree:   world.NewColumnMap(width, depth),
	}

	rng := rand.New(rand.NewSource(g.Seed))
	water, trees := 0, 0

	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			h := elevation[x][z]
			maps.Height[x][z] = h

			if g.WaterLevel > 0 && h < g.WaterLevel {
				maps.Water[x][z] = g.WaterLevel
				water++
				continue
			}
			if h > g.WaterLevel && rng.Float64() < g.TreeDensity {
				maps.Tree[x][z] = h + 1
				trees++
			}
		}
	}

	if g.logger != nil {
		g.logger.Debug("Сгенерирован рельеф %dx%d: сид %d, столбцов воды %d, деревьев %d",
			width, depth, g.Seed, water, trees)
	}
	return maps, nil
}

// elevation возвращает высоты столбцов, нормализованные в [1, MaxHeight]
func (g *Generator) elevation(width, depth int) [][]int {
	noise := util.NewNoise(g.Seed)

	raw := make([][]float64, width)
	lo, hi := math.Inf(1), math.Inf(-1)

	total := 0.0
	for _, w := range octaveWeights[:g.Octaves] {
		total += w
	}

	for x := 0; x < width; x++ {
		raw[x] = make([]float64, depth)
		for z := 0; z < depth; z++ {
			fx := float64(x)/float64(width) - 0.5
			fz := float64(z)/float64(depth) - 0.5

			// Остров: чем дальше от центра, тем ниже
			distance := math.Sqrt(fx*fx+fz*fz) / math.Sqrt(0.5)
			distance = distance * distance

			e := 0.0
			freq := g.Scale
			for _, w := range octaveWeights[:g.Octaves] {
				e += w * noise.Signed(freq*fx, freq*fz)
				freq *= 2
			}
			e /= total

			e = (1 + e - distance) / 2
			if e < 0 {
				e = 0
			}
			e = math.Pow(e, g.Exponent)

			raw[x][z] = e
			lo = math.Min(lo, e)
			hi = math.Max(hi, e)
		}
	}

	heights := make([][]int, width)
	for x := range raw {
		heights[x] = make([]int, depth)
		for z, e := range raw[x] {
			norm := 0.0
			if hi > lo {
				norm = (e - lo) / (hi - lo)
			}
			heights[x][z] = 1 + int(math.Round(norm*float64(g.MaxHeight-1)))
		}
	}
	return heights
}
