package world

import (
	"sort"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

// tickState — состояние, разделяемое четырьмя фазами одного тика
type tickState struct {
	settled  map[vec.Vec2]struct{} // позиции, в которые шарик уже пришёл в этом тике
	spentDup map[vec.Vec2]struct{} // дупликаторы, уже записавшие дубликат в этом тике
	pending  map[vec.Vec2]bool     // записанные, но ещё не применённые дубликаты
}

// tickReport — счётчики одного тика для метрик
type tickReport struct {
	moved      int
	duplicated int
	destroyed  int
}

func newTickState() *tickState {
	return &tickState{
		settled:  make(map[vec.Vec2]struct{}),
		spentDup: make(map[vec.Vec2]struct{}),
		pending:  make(map[vec.Vec2]bool),
	}
}

// advance возвращает продвижение позиции вдоль направления фазы.
// Чем больше значение, тем ближе шарик к "голове" очереди.
func advance(pos vec.Vec2, dir tile.Direction) int {
	switch dir {
	case tile.DirUp:
		return pos.Y
	case tile.DirDown:
		return -pos.Y
	case tile.DirLeft:
		return -pos.X
	default:
		return pos.X
	}
}

// stepTick выполняет один полный тик: четыре фазы в фиксированном
// порядке Up, Right, Left, Down с общим состоянием тика.
// Вызывающий уже держит блокировку мира.
func stepTick(tiles *ChunkStore, tokens *TokenRegistry) tickReport {
	st := newTickState()
	var report tickReport
	for _, dir := range tile.Phases {
		stepPhase(tiles, tokens, dir, st, &report)
	}
	return report
}

// stepPhase выполняет одну фазу тика в направлении dir
func stepPhase(tiles *ChunkStore, tokens *TokenRegistry, dir tile.Direction, st *tickState, report *tickReport) {
	// 1. Отбор кандидатов. Шарики, осевшие в этом тике, пропускаются.
	var work []vec.Vec2
	var doomed []vec.Vec2
	tokens.Each(func(pos vec.Vec2, on bool) {
		if _, ok := st.settled[pos]; ok {
			return
		}

		id := tiles.GetTile(pos)

		// Destroy срабатывает сразу при осмотре, независимо от направления
		if id == tile.DestroyID {
			doomed = append(doomed, pos)
			return
		}

		// Дубликат записывается один раз за тик; право на движение
		// дупликатор даёт в каждой подходящей фазе независимо.
		if id.DuplicatesAlong(dir) {
			if _, spent := st.spentDup[pos]; !spent {
				st.spentDup[pos] = struct{}{}
				st.pending[pos] = on
			}
		}

		behavior, ok := tile.Get(id)
		if !ok || !behavior.Routes(dir, on) {
			return
		}
		work = append(work, pos)
	})

	for _, pos := range doomed {
		tokens.Remove(pos)
		report.destroyed++
	}

	// 2. Порядок обработки: лидер (самый продвинутый по dir) первым.
	// Стек LIFO, поэтому сортируем по возрастанию продвижения —
	// лидер оказывается на вершине.
	sort.Slice(work, func(i, j int) bool {
		return advance(work[i], dir) < advance(work[j], dir)
	})

	// 3. Цикл разрешения со стеком повторов.
	// failedHold помнит Hold-ячейки, чей шарик в этой фазе
	// подвинуть не удалось: без этого цепочка крутилась бы вечно.
	failedHold := make(map[vec.Vec2]struct{})
	var spawned []TokenSnapshot
	stack := work
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		on, exists := tokens.Get(p)
		if !exists {
			// Шарик уже уничтожен или уведён цепочкой
			continue
		}
		if _, ok := st.settled[p]; ok {
			// Через Hold-цепочку мог прийти уже осевший шарик:
			// двигать его нельзя, цепочку нужно оборвать.
			if tiles.GetTile(p) == tile.HoldID {
				failedHold[p] = struct{}{}
			}
			continue
		}

		next := p.Add(dir.Delta())
		if _, occupied := tokens.Get(next); !occupied {
			if tiles.GetTile(next) == tile.BlockID {
				// Движение молча не удаётся, шарик остаётся на месте
				continue
			}

			tokens.Remove(p)
			if tiles.GetTile(next) == tile.DestroyID {
				// Вход в Destroy уничтожает шарик в момент шага
				report.destroyed++
			} else {
				tokens.Set(next, on)
				st.settled[next] = struct{}{}
				report.moved++
			}

			// Уход с дупликатора вдоль его оси довершает дублирование
			if tiles.GetTile(p).DuplicatesAlong(dir) {
				if state, pendingExists := st.pending[p]; pendingExists {
					spawned = append(spawned, TokenSnapshot{Pos: p, On: state})
					delete(st.pending, p)
				}
			}
			continue
		}

		// Целевая ячейка занята
		if tiles.GetTile(next) == tile.HoldID {
			if _, failed := failedHold[next]; !failed {
				// Откладываем p и сперва пробуем подвинуть жильца Hold:
				// если он уйдёт, цепочка протолкнётся сквозь Hold.
				stack = append(stack, p, next)
				continue
			}
		}
		if tiles.GetTile(p) == tile.HoldID {
			failedHold[p] = struct{}{}
			continue
		}
		// Движение молча не удаётся
	}

	// 4. Отложенные дубликаты применяются после цикла, чтобы новые
	// шарики не попали в разрешение этой же фазы.
	for _, token := range spawned {
		tokens.Set(token.Pos, token.On)
		report.duplicated++
	}
}
