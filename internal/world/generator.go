package world

import (
	"math/rand"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world/tile"
	"github.com/aquilax/go-perlin"
)

// DemoGenerator заполняет мир демонстрационной сценой: разреженные
// конвейерные дорожки, фильтры и дупликаторы со случайными шариками.
// Используется раннером для демо-запусков и прогрева бенчмарков.
type DemoGenerator struct {
	seed    int64
	noise   *perlin.Perlin
	scale   float64 // Масштаб шума (размер "узоров" сцены)
	density float64 // Доля ячеек, получающих тайл (0..1)
}

// NewDemoGenerator создаёт генератор с указанным сидом и плотностью
func NewDemoGenerator(seed int64, density float64) *DemoGenerator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав

	if density <= 0 || density > 1 {
		density = 0.3
	}

	return &DemoGenerator{
		seed:    seed,
		noise:   perlin.NewPerlin(alpha, beta, n, seed),
		scale:   0.08,
		density: density,
	}
}

// noiseAt возвращает значение шума Перлина в диапазоне 0..1
func (g *DemoGenerator) noiseAt(x, y int) float64 {
	v := g.noise.Noise2D(float64(x)*g.scale, float64(y)*g.scale)
	return (v + 1.0) / 2.0
}

// Populate заполняет квадрат чанков вокруг начала координат.
// Генерация детерминирована: сид чанка выводится из глобального
// сида и координат, как в генераторах ландшафта.
func (g *DemoGenerator) Populate(wm *WorldManager, radiusChunks int) {
	for cx := -radiusChunks; cx <= radiusChunks; cx++ {
		for cy := -radiusChunks; cy <= radiusChunks; cy++ {
			g.populateChunk(wm, vec.Vec2{X: cx, Y: cy})
		}
	}
}

func (g *DemoGenerator) populateChunk(wm *WorldManager, coords vec.Vec2) {
	chunkSeed := g.seed + int64(coords.X)*31 + int64(coords.Y)*17
	rng := rand.New(rand.NewSource(chunkSeed))

	startX := coords.X * ChunkSize
	startY := coords.Y * ChunkSize

	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			pos := vec.Vec2{X: startX + x, Y: startY + y}

			noise := g.noiseAt(pos.X, pos.Y)
			if noise > g.density {
				continue // ячейка остаётся пустой, чанк не материализуется зря
			}

			// Шум выбирает тайл, чанковый rng — редкие шарики
			id := g.pickTile(noise, rng)
			if id == tile.EmptyID {
				continue
			}
			_ = wm.PaintTile(pos, id)

			if rng.Float64() < 0.05 {
				wm.PaintToken(pos, rng.Intn(2) == 0)
			}
		}
	}
}

// pickTile выбирает тайл по значению шума, нормированному в 0..density
func (g *DemoGenerator) pickTile(noise float64, rng *rand.Rand) tile.ID {
	v := noise / g.density
	switch {
	case v < 0.22:
		return tile.RightID
	case v < 0.40:
		return tile.LeftID
	case v < 0.55:
		return tile.UpID
	case v < 0.70:
		return tile.DownID
	case v < 0.78:
		return tile.HoldID
	case v < 0.84:
		return tile.BlockID
	case v < 0.90:
		filters := []tile.ID{tile.FilterRightID, tile.FilterUpID, tile.FilterDownID, tile.FilterLeftID}
		return filters[rng.Intn(len(filters))]
	case v < 0.96:
		if rng.Intn(2) == 0 {
			return tile.DuplicateHorizontalID
		}
		return tile.DuplicateVerticalID
	default:
		return tile.DestroyID
	}
}
