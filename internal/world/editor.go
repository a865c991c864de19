package world

import (
	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

// ToolMode определяет режим работы инструмента редактирования
type ToolMode uint8

const (
	ToolTile   ToolMode = iota // рисование тайлов
	ToolToken                  // размещение шариков
	ToolEraser                 // стирание шариков
)

// Editor хранит состояние инструмента и переводит позицию указателя
// в операции редактирования мира. Это поверхность для внешнего
// обработчика ввода: он сообщает выбор инструмента и клики.
type Editor struct {
	world   *WorldManager
	mode    ToolMode
	tileID  tile.ID // активный тайл в режиме ToolTile
	tokenOn bool    // состояние шарика в режиме ToolToken
}

// NewEditor создаёт редактор поверх мира; стартовый инструмент — Empty-тайл
func NewEditor(world *WorldManager) *Editor {
	return &Editor{world: world, mode: ToolTile, tileID: tile.EmptyID}
}

// SelectTile выбирает тайл как активный инструмент
func (e *Editor) SelectTile(id tile.ID) error {
	if !tile.IsValid(id) {
		return errInvalidTool(id)
	}
	e.mode = ToolTile
	e.tileID = id
	return nil
}

// SelectToken выбирает размещение шарика с заданным состоянием
func (e *Editor) SelectToken(on bool) {
	e.mode = ToolToken
	e.tokenOn = on
}

// SelectEraser выбирает стирание шариков
func (e *Editor) SelectEraser() {
	e.mode = ToolEraser
}

// ApplyAt применяет активный инструмент к ячейке под указателем.
// Координаты указателя приходят в мировом пространстве с плавающей
// точкой; округление вниз выполняет vec.Vec2Float.ToVec2.
func (e *Editor) ApplyAt(pointer vec.Vec2Float) error {
	pos := pointer.ToVec2()

	switch e.mode {
	case ToolToken:
		e.world.PaintToken(pos, e.tokenOn)
		return nil
	case ToolEraser:
		e.world.EraseToken(pos)
		return nil
	default:
		return e.world.PaintTile(pos, e.tileID)
	}
}

func errInvalidTool(id tile.ID) error {
	return &InvalidToolError{ID: id}
}

// InvalidToolError сообщает о попытке выбрать несуществующий тайл
type InvalidToolError struct {
	ID tile.ID
}

func (e *InvalidToolError) Error() string {
	return "недопустимый тайл для инструмента: " + e.ID.String()
}
