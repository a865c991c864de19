package vec

import "math"

// Vec2 представляет 2D координаты
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 5, Y: v.Y >> 5} // Деление на 32 с округлением вниз
}

// LocalInChunk возвращает локальные координаты внутри чанка.
// Арифметика через маску, поэтому отрицательные мировые координаты
// корректно попадают в хвостовые ячейки чанка слева/снизу.
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0x1F, Y: v.Y & 0x1F} // Модуль 32
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
