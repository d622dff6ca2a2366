package world

import "github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"

// Параметры дерева: высота ствола в [4, 10], полуширина кроны в [4, 7]
const (
	minTrunkHeight  = 4
	trunkHeightSpan = 7
	minCanopySize   = 4
	canopySizeSpan  = 4
)

// voxelWriter - функция записи вокселя уровня карты или мира
type voxelWriter func(x, y, z int, id block.ID)

// Tree описывает одно сгенерированное дерево
type Tree struct {
	TrunkHeight int
	Canopy      int
}

// placeTree строит ствол от base вверх и ступенчатую крону над ним.
// Слой кроны layer имеет полуширину canopy-layer.
func placeTree(write voxelWriter, x, base, z int, rng Rand) Tree {
	tree := Tree{
		TrunkHeight: minTrunkHeight + rng.Intn(trunkHeightSpan),
		Canopy:      minCanopySize + rng.Intn(canopySizeSpan),
	}

	for y := base; y < base+tree.TrunkHeight; y++ {
		write(x, y, z, block.TreeTrunk)
	}

	top := base + tree.TrunkHeight
	for layer := 0; layer <= tree.Canopy; layer++ {
		half := tree.Canopy - layer
		for dx := -half; dx <= half; dx++ {
			for dz := -half; dz <= half; dz++ {
				write(x+dx, top+layer, z+dz, block.Leaf)
			}
		}
	}
	return tree
}

// placeForest обходит карту деревьев (z внешний цикл, x внутренний) и сажает
// дерево в каждый столбец со значением, отличным от NoColumn.
// Высота основания глобальная и сдвигается на offsetY.
func placeForest(write voxelWriter, trees ColumnMap, width, depth, offsetY int, rng Rand) int {
	planted := 0
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			base := trees[x][z]
			if base == NoColumn {
				continue
			}
			placeTree(write, x, base-offsetY, z, rng)
			planted++
		}
	}
	return planted
}
