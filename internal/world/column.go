package world

import (
	"errors"
	"fmt"
)

// NoColumn в карте воды или деревьев означает отсутствие записи в этом столбце
const NoColumn = 0

// ErrColumnMapSize возвращается, если карта столбцов меньше требуемой области
var ErrColumnMapSize = errors.New("column map does not cover the footprint")

// ErrNoRand возвращается, если расстановка деревьев запрошена без генератора случайных чисел
var ErrNoRand = errors.New("scenery placement requires a random source")

// Rand - источник псевдослучайных чисел для расстановки деревьев.
// *rand.Rand удовлетворяет интерфейсу.
type Rand interface {
	Intn(n int) int
}

// ColumnMap хранит одну высоту на столбец, индексируется как [x][z]
type ColumnMap [][]int

// NewColumnMap создаёт карту столбцов, заполненную NoColumn
func NewColumnMap(width, depth int) ColumnMap {
	return FillColumnMap(width, depth, NoColumn)
}

// FillColumnMap создаёт карту столбцов, заполненную значением value
func FillColumnMap(width, depth, value int) ColumnMap {
	cm := make(ColumnMap, width)
	for x := range cm {
		cm[x] = make([]int, depth)
		if value != 0 {
			for z := range cm[x] {
				cm[x][z] = value
			}
		}
	}
	return cm
}

// Width возвращает размер карты по оси X
func (c ColumnMap) Width() int {
	return len(c)
}

// Depth возвращает минимальную длину столбцов по оси Z
func (c ColumnMap) Depth() int {
	if len(c) == 0 {
		return 0
	}
	depth := len(c[0])
	for _, row := range c[1:] {
		if len(row) < depth {
			depth = len(row)
		}
	}
	return depth
}

// Covers проверяет, что карта покрывает область width x depth
func (c ColumnMap) Covers(width, depth int) bool {
	return c.Width() >= width && c.Depth() >= depth
}

// Section копирует окно [x0, x0+width) x [z0, z0+depth)
func (c ColumnMap) Section(x0, z0, width, depth int) ColumnMap {
	section := make(ColumnMap, width)
	for x := range section {
		section[x] = make([]int, depth)
		copy(section[x], c[x0+x][z0:z0+depth])
	}
	return section
}

// checkCovers возвращает ErrColumnMapSize с описанием карты
func (c ColumnMap) checkCovers(name string, width, depth int) error {
	if !c.Covers(width, depth) {
		return fmt.Errorf("%w: %s map is %dx%d, need %dx%d",
			ErrColumnMapSize, name, c.Width(), c.Depth(), width, depth)
	}
	return nil
}
