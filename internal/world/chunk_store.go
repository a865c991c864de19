package world

import (
	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

// ChunkStore — разреженное хранилище чанков мира.
// Чанк материализуется лениво при первой записи; чтение из
// несуществующего чанка возвращает тайл по умолчанию без аллокации.
type ChunkStore struct {
	chunks map[vec.Vec2]*Chunk
}

// ChunkSnapshot — снимок одного чанка для рендерера
type ChunkSnapshot struct {
	Coords vec.Vec2
	Tiles  [ChunkSize * ChunkSize]uint8
}

// NewChunkStore создаёт пустое хранилище чанков
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[vec.Vec2]*Chunk),
	}
}

// GetTile возвращает тайл по мировым координатам.
// Для любой позиции результат определён: отсутствующий чанк — Empty.
func (cs *ChunkStore) GetTile(pos vec.Vec2) tile.ID {
	chunk, exists := cs.chunks[pos.ToChunkCoords()]
	if !exists {
		return tile.EmptyID
	}
	return chunk.TileAt(pos.LocalInChunk())
}

// SetTile устанавливает тайл по мировым координатам,
// при необходимости создавая чанк, заполненный Empty.
func (cs *ChunkStore) SetTile(pos vec.Vec2, id tile.ID) {
	coords := pos.ToChunkCoords()
	chunk, exists := cs.chunks[coords]
	if !exists {
		chunk = NewChunk(coords)
		cs.chunks[coords] = chunk
	}
	chunk.SetTileAt(pos.LocalInChunk(), id)
}

// VisibleChunks возвращает снимки существующих чанков, чьи границы
// пересекают прямоугольник камеры. Несуществующие чанки не создаются.
// Порядок результата не определён.
func (cs *ChunkStore) VisibleChunks(view vec.Rect) []ChunkSnapshot {
	min, max := view.ChunkBounds()

	var result []ChunkSnapshot
	for cx := min.X; cx <= max.X; cx++ {
		for cy := min.Y; cy <= max.Y; cy++ {
			chunk, exists := cs.chunks[vec.Vec2{X: cx, Y: cy}]
			if !exists {
				continue
			}
			result = append(result, ChunkSnapshot{
				Coords: chunk.Coords,
				Tiles:  chunk.Snapshot(),
			})
		}
	}
	return result
}

// Count возвращает количество материализованных чанков
func (cs *ChunkStore) Count() int {
	return len(cs.chunks)
}

// Each обходит все материализованные чанки (для сохранения снимка мира)
func (cs *ChunkStore) Each(fn func(coords vec.Vec2, chunk *Chunk)) {
	for coords, chunk := range cs.chunks {
		fn(coords, chunk)
	}
}

// PutChunk вставляет готовый чанк (используется при загрузке снимка)
func (cs *ChunkStore) PutChunk(chunk *Chunk) {
	cs.chunks[chunk.Coords] = chunk
}
