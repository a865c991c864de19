package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/annel0/conveyor-game/internal/storage"
	"github.com/annel0/conveyor-game/internal/world"
	"github.com/annel0/conveyor-game/internal/world/tile"
)

const timeFormat = "2006-01-02 15:04:05"

func main() {
	var (
		dataPath = flag.String("data", "data", "директория данных песочницы")
		command  = flag.String("cmd", "info", "Команда: info, chunks, tokens")
		limit    = flag.Int("limit", 100, "максимум строк вывода")
	)
	flag.Parse()

	ws, err := storage.NewWorldStorage(*dataPath)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть хранилище: %v", err)
	}
	defer ws.Close()

	switch *command {
	case "info":
		if err := printInfo(ws); err != nil {
			log.Fatalf("❌ %v", err)
		}
	case "chunks":
		if err := printChunks(ws, *limit); err != nil {
			log.Fatalf("❌ %v", err)
		}
	case "tokens":
		if err := printTokens(ws, *limit); err != nil {
			log.Fatalf("❌ %v", err)
		}
	default:
		log.Fatalf("❌ Неизвестная команда: %s", *command)
	}
}

// printInfo выводит метаданные последнего снимка
func printInfo(ws *storage.WorldStorage) error {
	meta, err := ws.Meta()
	if err != nil {
		return err
	}
	if meta == nil {
		fmt.Println("Снимков ещё нет")
		return nil
	}

	fmt.Printf("Снимок:   %s\n", meta.ID)
	fmt.Printf("Сохранён: %s\n", meta.SavedAt.Format(timeFormat))
	fmt.Printf("Тик:      %d\n", meta.Tick)
	fmt.Printf("Чанков:   %d\n", meta.Chunks)
	fmt.Printf("Шариков:  %d\n", meta.Tokens)
	return nil
}

// loadWorld восстанавливает мир снимка во временный менеджер
func loadWorld(ws *storage.WorldStorage) (*world.WorldManager, error) {
	wm := world.NewWorldManager()
	meta, err := ws.LoadWorld(wm)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("снимков ещё нет")
	}
	return wm, nil
}

// printChunks выводит чанки снимка и количество непустых тайлов
func printChunks(ws *storage.WorldStorage, limit int) error {
	wm, err := loadWorld(ws)
	if err != nil {
		return err
	}

	chunks := wm.ExportChunks()
	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].Coords.X != chunks[j].Coords.X {
			return chunks[i].Coords.X < chunks[j].Coords.X
		}
		return chunks[i].Coords.Y < chunks[j].Coords.Y
	})

	for i, snapshot := range chunks {
		if i >= limit {
			fmt.Printf("… ещё %d чанков\n", len(chunks)-limit)
			break
		}
		nonEmpty := 0
		for _, code := range snapshot.Tiles {
			if code != tile.EmptyID.Encode() {
				nonEmpty++
			}
		}
		fmt.Printf("чанк (%d, %d): %d непустых тайлов\n", snapshot.Coords.X, snapshot.Coords.Y, nonEmpty)
	}
	return nil
}

// printTokens выводит шарики снимка
func printTokens(ws *storage.WorldStorage, limit int) error {
	wm, err := loadWorld(ws)
	if err != nil {
		return err
	}

	tokens := wm.ExportTokens()
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Pos.X != tokens[j].Pos.X {
			return tokens[i].Pos.X < tokens[j].Pos.X
		}
		return tokens[i].Pos.Y < tokens[j].Pos.Y
	})

	for i, token := range tokens {
		if i >= limit {
			fmt.Printf("… ещё %d шариков\n", len(tokens)-limit)
			break
		}
		state := "off"
		if token.On {
			state = "on"
		}
		tileName := wm.GetTile(token.Pos)
		fmt.Printf("шарик (%d, %d) %s на тайле %s\n", token.Pos.X, token.Pos.Y, state, tileName)
	}
	return nil
}
