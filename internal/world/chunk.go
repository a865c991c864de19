package world

import (
	"fmt"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

// ChunkSize — длина стороны чанка в тайлах.
// Согласована со сдвигом/маской в vec (>>5 и &0x1F).
const ChunkSize = 32

// Chunk представляет участок мира размером 32x32 тайла.
// Тайлы лежат в плоском массиве кодов; строка y=0 хранится последней
// (вертикальный флип), чтобы раскладка совпадала с форматом загрузки
// текстуры чанка в рендерер.
type Chunk struct {
	Coords vec.Vec2                     // Координаты чанка в мире
	Tiles  [ChunkSize * ChunkSize]uint8 // Коды тайлов, flip по вертикали
}

// NewChunk создаёт новый чанк, целиком заполненный тайлом по умолчанию
func NewChunk(coords vec.Vec2) *Chunk {
	// Нулевой массив уже означает "всё Empty": EmptyID == 0
	return &Chunk{Coords: coords}
}

// tileIndex возвращает индекс локальной ячейки в плоском массиве
func tileIndex(local vec.Vec2) int {
	return (ChunkSize-1-local.Y)*ChunkSize + local.X
}

// TileAt возвращает тайл по локальным координатам.
// Код вне набора может появиться только при порче памяти,
// поэтому ошибка декодирования фатальна.
func (c *Chunk) TileAt(local vec.Vec2) tile.ID {
	id, err := tile.Decode(c.Tiles[tileIndex(local)])
	if err != nil {
		panic(fmt.Sprintf("чанк %v повреждён: %v", c.Coords, err))
	}
	return id
}

// SetTileAt устанавливает тайл по локальным координатам
func (c *Chunk) SetTileAt(local vec.Vec2, id tile.ID) {
	c.Tiles[tileIndex(local)] = id.Encode()
}

// Snapshot возвращает копию массива кодов тайлов.
// Копия отдаётся рендереру: он не должен держать ссылку
// на память, которую мутирует симуляция.
func (c *Chunk) Snapshot() [ChunkSize * ChunkSize]uint8 {
	return c.Tiles
}
