package block

import (
	"fmt"
	"sort"
	"strings"
)

// ID представляет тип вокселя. Хранится одним байтом на ячейку.
type ID uint8

// Константы типов вокселей. Набор закрыт: значения используются как индекс
// в буфере чанка и не должны меняться.
const (
	Air       ID = iota // 0 - отсутствие вокселя
	Grass               // 1
	Water               // 2
	TreeTrunk           // 3
	Leaf                // 4
)

// Info описывает зарегистрированный тип вокселя
type Info struct {
	ID     ID
	Name   string   // Стабильное имя для логов, конфигурации и CLI
	Colour [3]uint8 // Базовый цвет для инстансинга на стороне рендера
}

var (
	registry = make(map[ID]Info)
	byName   = make(map[string]ID)
)

// Register добавляет тип вокселя в регистр
func Register(info Info) {
	registry[info.ID] = info
	byName[info.Name] = info.ID
}

// Get возвращает описание для указанного ID
func Get(id ID) (Info, bool) {
	info, exists := registry[id]
	return info, exists
}

// IsValid проверяет, является ли ID допустимым типом вокселя
func IsValid(id ID) bool {
	_, exists := registry[id]
	return exists
}

// Parse возвращает ID по имени типа (регистр не учитывается)
func Parse(name string) (ID, error) {
	id, exists := byName[strings.ToLower(strings.TrimSpace(name))]
	if !exists {
		return Air, fmt.Errorf("неизвестный тип вокселя %q", name)
	}
	return id, nil
}

// Solid возвращает все зарегистрированные типы, кроме воздуха, по возрастанию ID
func Solid() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		if id != Air {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// String возвращает имя типа вокселя
func (id ID) String() string {
	if info, ok := registry[id]; ok {
		return info.Name
	}
	return fmt.Sprintf("unknown(%d)", uint8(id))
}
