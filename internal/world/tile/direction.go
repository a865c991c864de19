package tile

import "github.com/annel0/conveyor-game/internal/vec"

// Direction представляет одно из четырёх направлений движения шарика
type Direction uint8

const (
	DirUp Direction = iota
	DirRight
	DirLeft
	DirDown
)

// Phases задаёт фиксированный порядок фаз одного тика симуляции
var Phases = [4]Direction{DirUp, DirRight, DirLeft, DirDown}

// Delta возвращает единичный вектор направления.
// Ось Y растёт вверх, как в координатах камеры.
func (d Direction) Delta() vec.Vec2 {
	switch d {
	case DirUp:
		return vec.Vec2{X: 0, Y: 1}
	case DirDown:
		return vec.Vec2{X: 0, Y: -1}
	case DirLeft:
		return vec.Vec2{X: -1, Y: 0}
	default:
		return vec.Vec2{X: 1, Y: 0}
	}
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// String возвращает строковое представление направления
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirLeft:
		return "Left"
	default:
		return "Down"
	}
}
