package world

import "github.com/alan-bolger/4th-year-project-voxel-engine/internal/util"

// Populate заполняет мир по картам высот, деревьев и воды.
// Каждая карта мира получает свою вырезку карт высот и воды; карты, в которых
// не осталось вокселей, освобождаются. Деревья сажаются одним проходом на
// уровне мира, поэтому кроны на границах тайлов не обрезаются.
func (w *World) Populate(height, trees, water ColumnMap, rng Rand) error {
	d := w.dims
	if err := height.checkCovers("height", d.WorldWidth, d.WorldDepth); err != nil {
		return err
	}
	if err := water.checkCovers("water", d.WorldWidth, d.WorldDepth); err != nil {
		return err
	}
	if trees != nil {
		if err := trees.checkCovers("tree", d.WorldWidth, d.WorldDepth); err != nil {
			return err
		}
		if rng == nil {
			return ErrNoRand
		}
	}

	for mz := 0; mz < w.md; mz++ {
		for my := 0; my < w.mh; my++ {
			for mx := 0; mx < w.mw; mx++ {
				slot := util.Flatten(mx, my, mz, w.mh, w.md)
				origin := w.mapOrigin(slot)

				hs := height.Section(origin.X, origin.Z, d.MapWidth, d.MapDepth)
				ws := water.Section(origin.X, origin.Z, d.MapWidth, d.MapDepth)
				if w.maps[slot] == nil && !touchesLayer(hs, ws, origin.Y, d.MapHeight) {
					continue
				}

				m := w.maps[slot]
				if m == nil {
					m = w.allocMap(slot)
				}
				if err := m.Populate(hs, ws, nil, nil); err != nil {
					return err
				}
				if m.IsEmpty() {
					w.releaseMap(slot)
				}
			}
		}
	}

	planted := 0
	if trees != nil {
		planted = w.PlaceScenery(trees, rng)
	}

	stats := w.Stats()
	w.logger.Info("Мир заполнен: карт %d, чанков %d, вокселей %d, деревьев %d",
		stats.Maps, stats.Chunks, stats.Voxels, planted)
	return nil
}

// PlaceScenery сажает деревья по карте деревьев через запись на уровне мира.
// Возвращает число посаженных деревьев.
func (w *World) PlaceScenery(trees ColumnMap, rng Rand) int {
	width, depth := w.dims.WorldWidth, w.dims.WorldDepth
	if trees.Width() < width {
		width = trees.Width()
	}
	if trees.Depth() < depth {
		depth = trees.Depth()
	}
	return placeForest(w.SetVoxel, trees, width, depth, 0, rng)
}

// touchesLayer проверяет, попадает ли хотя бы одна высота в слой [y0, y0+h)
func touchesLayer(height, water ColumnMap, y0, h int) bool {
	in := func(y int) bool { return y >= y0 && y < y0+h }
	for x := range height {
		for z := range height[x] {
			if in(height[x][z]) {
				return true
			}
			if level := water[x][z]; level != NoColumn && in(level) {
				return true
			}
		}
	}
	return false
}
