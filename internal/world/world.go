package world

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/conveyor-game/internal/eventbus"
	"github.com/annel0/conveyor-game/internal/metrics"
	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

// WorldManager владеет хранилищем чанков и реестром шариков и
// координирует редактирование, симуляцию и снимки для рендерера.
// Симуляция и редактирование работают строго последовательно;
// блокировка нужна только для снимков, которые рендерер может
// запрашивать из своего потока.
type WorldManager struct {
	mu     sync.RWMutex
	chunks *ChunkStore
	tokens *TokenRegistry
	tickID uint64
}

// NewWorldManager создаёт пустой мир
func NewWorldManager() *WorldManager {
	return &WorldManager{
		chunks: NewChunkStore(),
		tokens: NewTokenRegistry(),
	}
}

// tileEvent и tokenEvent — полезные нагрузки событий редактирования
type tileEvent struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tile string `json:"tile"`
}

type tokenEvent struct {
	X  int  `json:"x"`
	Y  int  `json:"y"`
	On bool `json:"on,omitempty"`
}

// publishEvent отправляет событие мира в глобальную шину
func publishEvent(eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = eventbus.Publish(context.Background(), eventbus.NewEnvelope("world", eventType, data))
}

// PaintTile устанавливает тайл в указанной мировой позиции.
// Недопустимый ID — ошибка вызывающего, мир не трогается.
func (wm *WorldManager) PaintTile(pos vec.Vec2, id tile.ID) error {
	if !tile.IsValid(id) {
		return fmt.Errorf("недопустимый тайл %d в позиции %v", uint8(id), pos)
	}

	wm.mu.Lock()
	wm.chunks.SetTile(pos, id)
	wm.mu.Unlock()

	publishEvent("tile_placed", tileEvent{X: pos.X, Y: pos.Y, Tile: id.String()})
	return nil
}

// PaintToken размещает шарик (или перезаписывает состояние существующего)
func (wm *WorldManager) PaintToken(pos vec.Vec2, on bool) {
	wm.mu.Lock()
	wm.tokens.Set(pos, on)
	wm.mu.Unlock()

	publishEvent("token_placed", tokenEvent{X: pos.X, Y: pos.Y, On: on})
}

// EraseToken удаляет шарик; отсутствие шарика — не ошибка
func (wm *WorldManager) EraseToken(pos vec.Vec2) {
	wm.mu.Lock()
	wm.tokens.Remove(pos)
	wm.mu.Unlock()

	publishEvent("token_erased", tokenEvent{X: pos.X, Y: pos.Y})
}

// GetTile возвращает тайл в мировой позиции (Empty для пустого мира)
func (wm *WorldManager) GetTile(pos vec.Vec2) tile.ID {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.chunks.GetTile(pos)
}

// GetToken возвращает состояние шарика и признак его наличия
func (wm *WorldManager) GetToken(pos vec.Vec2) (bool, bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.tokens.Get(pos)
}

// StepTick выполняет один тик симуляции и обновляет метрики.
// Тик всегда доходит до конца: частичных состояний не бывает.
func (wm *WorldManager) StepTick() {
	wm.mu.Lock()
	start := time.Now()
	report := stepTick(wm.chunks, wm.tokens)
	wm.tickID++
	tokens := wm.tokens.Len()
	chunks := wm.chunks.Count()
	wm.mu.Unlock()

	metrics.ObserveTick(time.Since(start), report.moved, report.duplicated, report.destroyed, tokens, chunks)
}

// TickID возвращает номер последнего завершённого тика
func (wm *WorldManager) TickID() uint64 {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.tickID
}

// TokenCount возвращает количество шариков в мире
func (wm *WorldManager) TokenCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.tokens.Len()
}

// ChunkCount возвращает количество материализованных чанков
func (wm *WorldManager) ChunkCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.chunks.Count()
}

// VisibleChunks возвращает свежие снимки чанков в области камеры.
// Результат материализуется при каждом вызове и не является живым видом.
func (wm *WorldManager) VisibleChunks(view vec.Rect) []ChunkSnapshot {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.chunks.VisibleChunks(view)
}

// VisibleTokens возвращает свежие снимки шариков в области камеры
func (wm *WorldManager) VisibleTokens(view vec.Rect) []TokenSnapshot {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.tokens.VisibleTokens(view)
}

// ExportChunks возвращает снимки всех чанков мира (для сохранения)
func (wm *WorldManager) ExportChunks() []ChunkSnapshot {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	result := make([]ChunkSnapshot, 0, wm.chunks.Count())
	wm.chunks.Each(func(coords vec.Vec2, chunk *Chunk) {
		result = append(result, ChunkSnapshot{Coords: coords, Tiles: chunk.Snapshot()})
	})
	return result
}

// ExportTokens возвращает снимки всех шариков мира (для сохранения)
func (wm *WorldManager) ExportTokens() []TokenSnapshot {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	result := make([]TokenSnapshot, 0, wm.tokens.Len())
	wm.tokens.Each(func(pos vec.Vec2, on bool) {
		result = append(result, TokenSnapshot{Pos: pos, On: on})
	})
	return result
}

// RestoreChunk вставляет чанк из снимка, проверяя каждый код тайла.
// Битый снимок отвергается целиком, мир остаётся нетронутым.
func (wm *WorldManager) RestoreChunk(snapshot ChunkSnapshot) error {
	for i, code := range snapshot.Tiles {
		if _, err := tile.Decode(code); err != nil {
			return fmt.Errorf("снимок чанка %v, ячейка %d: %w", snapshot.Coords, i, err)
		}
	}

	chunk := NewChunk(snapshot.Coords)
	chunk.Tiles = snapshot.Tiles

	wm.mu.Lock()
	wm.chunks.PutChunk(chunk)
	wm.mu.Unlock()
	return nil
}

// RestoreToken вставляет шарик из снимка без публикации событий
func (wm *WorldManager) RestoreToken(snapshot TokenSnapshot) {
	wm.mu.Lock()
	wm.tokens.Set(snapshot.Pos, snapshot.On)
	wm.mu.Unlock()
}
