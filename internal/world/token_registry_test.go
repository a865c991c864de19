package world

import (
	"testing"

	"github.com/annel0/conveyor-game/internal/vec"
)

func TestTokenSetOverwritesState(t *testing.T) {
	// В одной позиции живёт не более одного шарика:
	// повторная установка перезаписывает состояние
	tr := NewTokenRegistry()
	pos := vec.Vec2{X: 2, Y: -3}

	tr.Set(pos, false)
	tr.Set(pos, true)

	if tr.Len() != 1 {
		t.Fatalf("Ожидался один шарик, получено %d", tr.Len())
	}
	on, exists := tr.Get(pos)
	if !exists || !on {
		t.Errorf("Ожидалось состояние on=true, получено on=%v exists=%v", on, exists)
	}
}

func TestTokenRemoveMissingIsNoop(t *testing.T) {
	tr := NewTokenRegistry()
	tr.Set(vec.Vec2{X: 0, Y: 0}, true)

	tr.Remove(vec.Vec2{X: 5, Y: 5})

	if tr.Len() != 1 {
		t.Errorf("Удаление отсутствующего шарика изменило реестр: %d", tr.Len())
	}
}

func TestVisibleTokens(t *testing.T) {
	tr := NewTokenRegistry()
	tr.Set(vec.Vec2{X: 0, Y: 0}, true)
	tr.Set(vec.Vec2{X: -2, Y: 1}, false)
	tr.Set(vec.Vec2{X: 50, Y: 50}, true) // вне камеры

	view := vec.Rect{MinX: -3, MinY: -3, MaxX: 3, MaxY: 3}
	visible := tr.VisibleTokens(view)

	if len(visible) != 2 {
		t.Fatalf("Ожидалось 2 видимых шарика, получено %d", len(visible))
	}
	for _, token := range visible {
		if token.Pos.X == 50 {
			t.Error("Шарик за пределами камеры попал в результат")
		}
	}
}
