package block

// Регистрируем все типы вокселей при импорте пакета
func init() {
	Register(Info{ID: Air, Name: "air"})
	Register(Info{ID: Grass, Name: "grass", Colour: [3]uint8{86, 160, 60}})
	Register(Info{ID: Water, Name: "water", Colour: [3]uint8{48, 110, 200}})
	Register(Info{ID: TreeTrunk, Name: "tree_trunk", Colour: [3]uint8{110, 76, 40}})
	Register(Info{ID: Leaf, Name: "leaf", Colour: [3]uint8{40, 120, 40}})
}
