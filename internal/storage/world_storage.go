package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/annel0/conveyor-game/internal/vec"
	"github.com/annel0/conveyor-game/internal/world"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// WorldStorage — снимки мира в BadgerDB.
// Раскладка ключей:
//
//	meta          -> SnapshotMeta (JSON)
//	chunk:<x>:<y> -> ChunkRecord (JSON, сжат zstd)
//	tokens        -> []TokenRecord (JSON, сжат zstd)
//
// Снимка достаточно для точного восстановления мира:
// (координата чанка -> массив кодов тайлов) и (позиция -> состояние).
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// SnapshotMeta описывает сохранённый снимок мира
type SnapshotMeta struct {
	ID      string    `json:"id"`       // UUID снимка
	SavedAt time.Time `json:"saved_at"` // Время сохранения (UTC)
	Tick    uint64    `json:"tick"`     // Номер тика на момент сохранения
	Chunks  int       `json:"chunks"`   // Количество чанков в снимке
	Tokens  int       `json:"tokens"`   // Количество шариков в снимке
}

// ChunkRecord — сериализованный чанк
type ChunkRecord struct {
	Coords vec.Vec2 `json:"coords"`
	Tiles  []uint8  `json:"tiles"` // ровно ChunkSize² кодов
}

// TokenRecord — сериализованный шарик
type TokenRecord struct {
	X  int  `json:"x"`
	Y  int  `json:"y"`
	On bool `json:"on"`
}

// NewWorldStorage создает новое хранилище снимков мира
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	ws.encoder.Close()
	ws.decoder.Close()
	return ws.db.Close()
}

// chunkKey создаёт ключ чанка для BadgerDB
func chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", coords.X, coords.Y))
}

// SaveWorld сохраняет полный снимок мира, заменяя предыдущий
func (ws *WorldStorage) SaveWorld(wm *world.WorldManager) (*SnapshotMeta, error) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	chunks := wm.ExportChunks()
	tokens := wm.ExportTokens()

	// Сначала убираем чанки прошлого снимка: мир мог их не содержать
	if err := ws.dropPrefix([]byte("chunk:")); err != nil {
		return nil, fmt.Errorf("ошибка очистки старого снимка: %w", err)
	}

	batch := ws.db.NewWriteBatch()
	defer batch.Cancel()

	for _, snapshot := range chunks {
		record := ChunkRecord{Coords: snapshot.Coords, Tiles: snapshot.Tiles[:]}
		data, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации чанка %v: %w", snapshot.Coords, err)
		}
		if err := batch.Set(chunkKey(snapshot.Coords), ws.encoder.EncodeAll(data, nil)); err != nil {
			return nil, fmt.Errorf("ошибка записи чанка %v: %w", snapshot.Coords, err)
		}
	}

	records := make([]TokenRecord, 0, len(tokens))
	for _, token := range tokens {
		records = append(records, TokenRecord{X: token.Pos.X, Y: token.Pos.Y, On: token.On})
	}
	tokenData, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации шариков: %w", err)
	}
	if err := batch.Set([]byte("tokens"), ws.encoder.EncodeAll(tokenData, nil)); err != nil {
		return nil, fmt.Errorf("ошибка записи шариков: %w", err)
	}

	meta := SnapshotMeta{
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC(),
		Tick:    wm.TickID(),
		Chunks:  len(chunks),
		Tokens:  len(records),
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}
	if err := batch.Set([]byte("meta"), metaData); err != nil {
		return nil, fmt.Errorf("ошибка записи метаданных: %w", err)
	}

	if err := batch.Flush(); err != nil {
		return nil, fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	return &meta, nil
}

// LoadWorld восстанавливает мир из последнего снимка.
// Если снимка нет, мир остаётся пустым и ошибка не возвращается.
func (ws *WorldStorage) LoadWorld(wm *world.WorldManager) (*SnapshotMeta, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	meta, err := ws.readMeta()
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil // снимка ещё не было
	}

	err = ws.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("chunk:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var record ChunkRecord
			if err := it.Item().Value(func(val []byte) error {
				return ws.decodeJSON(val, &record)
			}); err != nil {
				return err
			}

			if len(record.Tiles) != world.ChunkSize*world.ChunkSize {
				return fmt.Errorf("чанк %v: неверный размер массива тайлов (%d)", record.Coords, len(record.Tiles))
			}
			snapshot := world.ChunkSnapshot{Coords: record.Coords}
			copy(snapshot.Tiles[:], record.Tiles)
			if err := wm.RestoreChunk(snapshot); err != nil {
				return err
			}
		}

		item, err := txn.Get([]byte("tokens"))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		var records []TokenRecord
		if err := item.Value(func(val []byte) error {
			return ws.decodeJSON(val, &records)
		}); err != nil {
			return err
		}
		for _, record := range records {
			wm.RestoreToken(world.TokenSnapshot{Pos: vec.Vec2{X: record.X, Y: record.Y}, On: record.On})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки снимка: %w", err)
	}

	return meta, nil
}

// Meta возвращает метаданные последнего снимка (nil, если снимка нет)
func (ws *WorldStorage) Meta() (*SnapshotMeta, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}
	return ws.readMeta()
}

func (ws *WorldStorage) readMeta() (*SnapshotMeta, error) {
	var meta *SnapshotMeta
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("meta"))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var m SnapshotMeta
			if err := json.Unmarshal(val, &m); err != nil {
				return err
			}
			meta = &m
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения метаданных: %w", err)
	}
	return meta, nil
}

// decodeJSON распаковывает zstd и разбирает JSON
func (ws *WorldStorage) decodeJSON(compressed []byte, target interface{}) error {
	data, err := ws.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return fmt.Errorf("ошибка распаковки zstd: %w", err)
	}
	return json.Unmarshal(data, target)
}

// dropPrefix удаляет все ключи с указанным префиксом
func (ws *WorldStorage) dropPrefix(prefix []byte) error {
	return ws.db.DropPrefix(prefix)
}
