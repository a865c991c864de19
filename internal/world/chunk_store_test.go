package world

import (
	"testing"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

func TestGetTileDoesNotMaterialize(t *testing.T) {
	// Чтение из несуществующего чанка возвращает Empty
	// и не создаёт чанк
	cs := NewChunkStore()

	if id := cs.GetTile(vec.Vec2{X: 1000, Y: -1000}); id != tile.EmptyID {
		t.Errorf("Ожидался Empty, получен %v", id)
	}
	if cs.Count() != 0 {
		t.Errorf("Чтение материализовало %d чанков", cs.Count())
	}
}

func TestSetTileMaterializesSingleChunk(t *testing.T) {
	cs := NewChunkStore()

	// Обе позиции лежат в чанке (0,0)
	cs.SetTile(vec.Vec2{X: 0, Y: 0}, tile.UpID)
	cs.SetTile(vec.Vec2{X: 31, Y: 31}, tile.DownID)

	if cs.Count() != 1 {
		t.Errorf("Ожидался один чанк, получено %d", cs.Count())
	}
	if id := cs.GetTile(vec.Vec2{X: 0, Y: 0}); id != tile.UpID {
		t.Errorf("Ожидался Up, получен %v", id)
	}
	if id := cs.GetTile(vec.Vec2{X: 31, Y: 31}); id != tile.DownID {
		t.Errorf("Ожидался Down, получен %v", id)
	}
}

func TestSetTileNegativeCoords(t *testing.T) {
	// Позиция (-1,-1) попадает в чанк (-1,-1), а не в (0,0)
	cs := NewChunkStore()

	cs.SetTile(vec.Vec2{X: -1, Y: -1}, tile.BlockID)

	if id := cs.GetTile(vec.Vec2{X: -1, Y: -1}); id != tile.BlockID {
		t.Errorf("Ожидался Block, получен %v", id)
	}
	if id := cs.GetTile(vec.Vec2{X: 0, Y: 0}); id != tile.EmptyID {
		t.Errorf("Чанк (0,0) не должен был появиться, получен %v", id)
	}
}

func TestVisibleChunks(t *testing.T) {
	cs := NewChunkStore()
	cs.SetTile(vec.Vec2{X: 0, Y: 0}, tile.UpID)     // чанк (0,0)
	cs.SetTile(vec.Vec2{X: -1, Y: 0}, tile.DownID)  // чанк (-1,0)
	cs.SetTile(vec.Vec2{X: 100, Y: 0}, tile.HoldID) // чанк (3,0), вне камеры

	view := vec.Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}
	visible := cs.VisibleChunks(view)

	if len(visible) != 2 {
		t.Fatalf("Ожидалось 2 видимых чанка, получено %d", len(visible))
	}
	for _, snapshot := range visible {
		if snapshot.Coords.X == 3 {
			t.Error("Чанк за пределами камеры попал в результат")
		}
	}
	if cs.Count() != 3 {
		t.Errorf("Запрос видимости материализовал чанки: %d", cs.Count())
	}
}
