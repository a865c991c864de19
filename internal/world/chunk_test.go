package world

import (
	"testing"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

func TestNewChunkFilledWithEmpty(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 0, Y: 0})

	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			if id := chunk.TileAt(vec.Vec2{X: x, Y: y}); id != tile.EmptyID {
				t.Fatalf("Новый чанк должен быть пустым, в (%d,%d) найден %v", x, y, id)
			}
		}
	}
}

func TestChunkSetAndGet(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: -1, Y: 3})

	chunk.SetTileAt(vec.Vec2{X: 5, Y: 7}, tile.FilterUpID)

	if id := chunk.TileAt(vec.Vec2{X: 5, Y: 7}); id != tile.FilterUpID {
		t.Errorf("Ожидался FilterUp, получен %v", id)
	}
	if id := chunk.TileAt(vec.Vec2{X: 7, Y: 5}); id != tile.EmptyID {
		t.Errorf("Соседняя ячейка не должна была измениться, получен %v", id)
	}
}

func TestChunkVerticalFlip(t *testing.T) {
	// Строка y=0 хранится последней в плоском массиве
	chunk := NewChunk(vec.Vec2{X: 0, Y: 0})

	chunk.SetTileAt(vec.Vec2{X: 0, Y: 0}, tile.BlockID)
	chunk.SetTileAt(vec.Vec2{X: 3, Y: ChunkSize - 1}, tile.HoldID)

	if code := chunk.Tiles[(ChunkSize-1)*ChunkSize]; code != tile.BlockID.Encode() {
		t.Errorf("Ячейка (0,0) должна лежать в начале последней строки массива, код %d", code)
	}
	if code := chunk.Tiles[3]; code != tile.HoldID.Encode() {
		t.Errorf("Ячейка (3,31) должна лежать в первой строке массива, код %d", code)
	}
}

func TestChunkSnapshotIsCopy(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 0, Y: 0})
	chunk.SetTileAt(vec.Vec2{X: 1, Y: 1}, tile.RightID)

	snapshot := chunk.Snapshot()
	chunk.SetTileAt(vec.Vec2{X: 1, Y: 1}, tile.LeftID)

	if snapshot[tileIndex(vec.Vec2{X: 1, Y: 1})] != tile.RightID.Encode() {
		t.Error("Снимок не должен меняться вслед за чанком")
	}
}

func TestCorruptedChunkPanics(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 0, Y: 0})
	chunk.Tiles[0] = 200 // код вне набора

	defer func() {
		if recover() == nil {
			t.Error("Чтение повреждённого чанка должно паниковать")
		}
	}()
	chunk.TileAt(vec.Vec2{X: 0, Y: ChunkSize - 1})
}
