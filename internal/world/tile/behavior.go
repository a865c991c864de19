package tile

// Behavior определяет маршрутизирующее поведение тайла.
// Тайлы не имеют состояния: поведение полностью описывается
// предикатом Routes над направлением фазы и состоянием шарика.
type Behavior interface {
	ID() ID
	Name() string

	// Routes сообщает, может ли шарик с состоянием on покинуть тайл
	// в направлении dir в соответствующей фазе тика. Побочные эффекты
	// (дублирование, уничтожение) остаются за движком симуляции.
	Routes(dir Direction, on bool) bool
}

var registry = make(map[ID]Behavior)

// Register добавляет поведение тайла в регистр
func Register(id ID, behavior Behavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id ID) (Behavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}
