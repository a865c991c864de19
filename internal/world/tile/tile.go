package tile

import "fmt"

// ID представляет компактный код тайла в хранилище чанков
type ID uint8

// Константы ID тайлов. Набор закрытый: конвейерная логика
// исчерпывается этими четырнадцатью вариантами.
const (
	EmptyID               ID = iota // 0 — тайл по умолчанию, чанк из нулей валиден
	UpID                            // 1
	DownID                          // 2
	LeftID                          // 3
	RightID                         // 4
	HoldID                          // 5
	BlockID                         // 6
	DuplicateHorizontalID           // 7
	DuplicateVerticalID             // 8
	FilterRightID                   // 9
	FilterUpID                      // 10
	FilterDownID                    // 11
	FilterLeftID                    // 12
	DestroyID                       // 13

	idCount // служебный маркер конца набора
)

// Encode возвращает код тайла для хранения. Функция тотальная.
func (id ID) Encode() uint8 {
	return uint8(id)
}

// Decode восстанавливает тайл из кода хранилища.
// Код вне набора — ошибка, никогда не "тайл по умолчанию":
// молчаливая подмена скрывала бы порчу данных.
func Decode(code uint8) (ID, error) {
	if code >= uint8(idCount) {
		return EmptyID, fmt.Errorf("неизвестный код тайла: %d", code)
	}
	return ID(code), nil
}

// IsValid проверяет, является ли ID допустимым тайлом
func IsValid(id ID) bool {
	return id < idCount
}

// DuplicatesAlong сообщает, дублирует ли тайл шарики вдоль направления dir
func (id ID) DuplicatesAlong(dir Direction) bool {
	switch id {
	case DuplicateHorizontalID:
		return dir == DirLeft || dir == DirRight
	case DuplicateVerticalID:
		return dir == DirUp || dir == DirDown
	default:
		return false
	}
}

// String возвращает имя тайла (для логов и инструментов)
func (id ID) String() string {
	if behavior, ok := Get(id); ok {
		return behavior.Name()
	}
	return fmt.Sprintf("Tile(%d)", uint8(id))
}
