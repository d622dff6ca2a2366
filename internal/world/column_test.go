package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnMapSection(t *testing.T) {
	cm := NewColumnMap(4, 3)
	for x := 0; x < 4; x++ {
		for z := 0; z < 3; z++ {
			cm[x][z] = x*10 + z
		}
	}

	section := cm.Section(1, 1, 2, 2)
	assert.Equal(t, ColumnMap{{11, 12}, {21, 22}}, section)

	// Вырезка - копия
	section[0][0] = -1
	assert.Equal(t, 11, cm[1][1])
}

func TestColumnMapCovers(t *testing.T) {
	cm := FillColumnMap(4, 4, 7)
	assert.True(t, cm.Covers(4, 4))
	assert.True(t, cm.Covers(2, 3))
	assert.False(t, cm.Covers(5, 4))

	// Неровная карта ограничена самым коротким столбцом
	cm[2] = cm[2][:2]
	assert.Equal(t, 2, cm.Depth())
	assert.False(t, cm.Covers(4, 4))

	var empty ColumnMap
	assert.Zero(t, empty.Depth())
	assert.True(t, empty.Covers(0, 0))
	assert.ErrorIs(t, empty.checkCovers("tree", 1, 1), ErrColumnMapSize)
}
