package vec

import "math"

// Rect описывает прямоугольник в мировых координатах (область камеры).
// MinX/MinY — левый нижний угол, MaxX/MaxY — правый верхний.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAround строит прямоугольник вокруг центра с заданными полушириной и полувысотой
func RectAround(center Vec2Float, halfWidth, halfHeight float64) Rect {
	return Rect{
		MinX: center.X - halfWidth,
		MinY: center.Y - halfHeight,
		MaxX: center.X + halfWidth,
		MaxY: center.Y + halfHeight,
	}
}

// CellBounds возвращает включительный диапазон целочисленных ячеек,
// пересекающих прямоугольник. Обе границы округляются вниз.
func (r Rect) CellBounds() (min Vec2, max Vec2) {
	min = Vec2{X: int(math.Floor(r.MinX)), Y: int(math.Floor(r.MinY))}
	max = Vec2{X: int(math.Floor(r.MaxX)), Y: int(math.Floor(r.MaxY))}
	return min, max
}

// ChunkBounds возвращает включительный диапазон координат чанков,
// чьи границы пересекают прямоугольник (floor по обеим кромкам).
func (r Rect) ChunkBounds() (min Vec2, max Vec2) {
	cellMin, cellMax := r.CellBounds()
	return cellMin.ToChunkCoords(), cellMax.ToChunkCoords()
}

// Contains проверяет, попадает ли ячейка pos в прямоугольник
func (r Rect) Contains(pos Vec2) bool {
	min, max := r.CellBounds()
	return pos.X >= min.X && pos.X <= max.X && pos.Y >= min.Y && pos.Y <= max.Y
}
