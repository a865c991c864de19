package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

func TestLoadWithoutSnapshot(t *testing.T) {
	ws, err := NewWorldStorage(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	wm := world.NewWorldManager()
	meta, err := ws.LoadWorld(wm)
	require.NoError(t, err)
	require.Nil(t, meta, "пустое хранилище не должно содержать снимка")
	require.Equal(t, 0, wm.ChunkCount())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dataPath := t.TempDir()

	ws, err := NewWorldStorage(dataPath)
	require.NoError(t, err)

	// Мир с тайлами в двух чанках (включая отрицательный) и шариками
	wm := world.NewWorldManager()
	require.NoError(t, wm.PaintTile(vec.Vec2{X: 0, Y: 0}, tile.RightID))
	require.NoError(t, wm.PaintTile(vec.Vec2{X: 5, Y: 7}, tile.FilterLeftID))
	require.NoError(t, wm.PaintTile(vec.Vec2{X: -10, Y: -10}, tile.DuplicateVerticalID))
	wm.PaintToken(vec.Vec2{X: 0, Y: 0}, false)
	wm.PaintToken(vec.Vec2{X: -10, Y: -10}, true)
	wm.StepTick()
	wm.StepTick()

	saved, err := ws.SaveWorld(wm)
	require.NoError(t, err)
	require.Equal(t, wm.ChunkCount(), saved.Chunks)
	require.Equal(t, wm.TokenCount(), saved.Tokens)
	require.Equal(t, uint64(2), saved.Tick)
	require.NoError(t, ws.Close())

	// Переоткрываем хранилище: снимок должен пережить рестарт
	ws, err = NewWorldStorage(dataPath)
	require.NoError(t, err)
	defer ws.Close()

	restored := world.NewWorldManager()
	loaded, err := ws.LoadWorld(restored)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, saved.ID, loaded.ID)

	// Тайлы восстановлены в точности
	require.Equal(t, tile.RightID, restored.GetTile(vec.Vec2{X: 0, Y: 0}))
	require.Equal(t, tile.FilterLeftID, restored.GetTile(vec.Vec2{X: 5, Y: 7}))
	require.Equal(t, tile.DuplicateVerticalID, restored.GetTile(vec.Vec2{X: -10, Y: -10}))
	require.Equal(t, wm.ChunkCount(), restored.ChunkCount())

	// Шарики восстановлены с состояниями
	require.ElementsMatch(t, wm.ExportTokens(), restored.ExportTokens())
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	ws, err := NewWorldStorage(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	// Первый снимок: два чанка
	wm := world.NewWorldManager()
	require.NoError(t, wm.PaintTile(vec.Vec2{X: 0, Y: 0}, tile.UpID))
	require.NoError(t, wm.PaintTile(vec.Vec2{X: 100, Y: 100}, tile.DownID))
	_, err = ws.SaveWorld(wm)
	require.NoError(t, err)

	// Второй снимок: один чанк; чанк (3,3) должен исчезнуть
	smaller := world.NewWorldManager()
	require.NoError(t, smaller.PaintTile(vec.Vec2{X: 0, Y: 0}, tile.HoldID))
	_, err = ws.SaveWorld(smaller)
	require.NoError(t, err)

	restored := world.NewWorldManager()
	meta, err := ws.LoadWorld(restored)
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.Equal(t, 1, restored.ChunkCount(), "чанки прошлого снимка должны быть удалены")
	require.Equal(t, tile.HoldID, restored.GetTile(vec.Vec2{X: 0, Y: 0}))
}
