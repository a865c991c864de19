package world

import "github.com/annel0/conveyor-game/internal/vec"

// TokenRegistry — разреженный реестр шариков.
// Ключ карты — мировая позиция, значение — булево состояние шарика.
// Инвариант единственности (не более одного шарика на позицию)
// обеспечивается самим ключом карты.
type TokenRegistry struct {
	tokens map[vec.Vec2]bool
}

// TokenSnapshot — снимок одного шарика для рендерера
type TokenSnapshot struct {
	Pos vec.Vec2
	On  bool
}

// NewTokenRegistry создаёт пустой реестр шариков
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		tokens: make(map[vec.Vec2]bool),
	}
}

// Set вставляет шарик либо перезаписывает состояние существующего
func (tr *TokenRegistry) Set(pos vec.Vec2, on bool) {
	tr.tokens[pos] = on
}

// Remove удаляет шарик; отсутствие шарика — не ошибка
func (tr *TokenRegistry) Remove(pos vec.Vec2) {
	delete(tr.tokens, pos)
}

// Get возвращает состояние шарика и признак его наличия
func (tr *TokenRegistry) Get(pos vec.Vec2) (bool, bool) {
	on, exists := tr.tokens[pos]
	return on, exists
}

// Len возвращает количество шариков в мире
func (tr *TokenRegistry) Len() int {
	return len(tr.tokens)
}

// Each обходит все шарики (порядок не определён)
func (tr *TokenRegistry) Each(fn func(pos vec.Vec2, on bool)) {
	for pos, on := range tr.tokens {
		fn(pos, on)
	}
}

// VisibleTokens возвращает шарики внутри прямоугольника камеры.
// Перебор идёт по целочисленным ячейкам прямоугольника: область
// видимости мала по сравнению с миром, O(площадь) приемлем.
func (tr *TokenRegistry) VisibleTokens(view vec.Rect) []TokenSnapshot {
	min, max := view.CellBounds()

	var result []TokenSnapshot
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			pos := vec.Vec2{X: x, Y: y}
			if on, exists := tr.tokens[pos]; exists {
				result = append(result, TokenSnapshot{Pos: pos, On: on})
			}
		}
	}
	return result
}
