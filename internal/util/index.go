package util

// Flatten преобразует трёхмерный индекс (x, y, z) в одномерный.
// h и d — размеры массива по осям Y и Z. Порядок row-major: x старшая ось.
// Диапазон координат проверяет вызывающая сторона.
func Flatten(x, y, z, h, d int) int {
	return x*h*d + y*d + z
}

// Unflatten выполняет обратное преобразование одномерного индекса в (x, y, z)
func Unflatten(i, h, d int) (x, y, z int) {
	x = i / (h * d)
	rest := i % (h * d)
	y = rest / d
	z = rest % d
	return x, y, z
}
