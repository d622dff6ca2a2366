package world

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

// ForEachVoxel обходит непустые воксели мира в мировых координатах.
// Порядок фиксирован: слоты карт, слоты чанков, плоский индекс вокселя.
func (w *World) ForEachVoxel(fn func(pos vec.Vec3, id block.ID)) {
	for _, m := range w.maps {
		if m == nil {
			continue
		}
		origin := m.origin
		m.ForEachVoxel(func(x, y, z int, id block.ID) {
			fn(vec.Vec3{X: origin.X + x, Y: origin.Y + y, Z: origin.Z + z}, id)
		})
	}
}

// Positions возвращает координаты вокселей, сгруппированные по типу.
// Результат - копия: после изменений мира его нужно запросить заново.
func (w *World) Positions() map[block.ID][]vec.Vec3 {
	positions := make(map[block.ID][]vec.Vec3)
	w.ForEachVoxel(func(pos vec.Vec3, id block.ID) {
		positions[id] = append(positions[id], pos)
	})
	return positions
}

// Digest возвращает xxhash64 содержимого мира.
// Два мира с одинаковыми вокселями дают одинаковый дайджест.
func (w *World) Digest() uint64 {
	h := xxhash.New()
	var buf [13]byte
	w.ForEachVoxel(func(pos vec.Vec3, id block.ID) {
		binary.LittleEndian.PutUint32(buf[0:], uint32(pos.X))
		binary.LittleEndian.PutUint32(buf[4:], uint32(pos.Y))
		binary.LittleEndian.PutUint32(buf[8:], uint32(pos.Z))
		buf[12] = byte(id)
		h.Write(buf[:])
	})
	return h.Sum64()
}
