package tile

// Набор закрытый, поэтому все поведения живут в одном файле
// и регистрируются одним init, а не по файлу на тайл.

// moverBehavior — прямой конвейер: двигает шарик строго в своём направлении
type moverBehavior struct {
	id   ID
	name string
	dir  Direction
}

func (b *moverBehavior) ID() ID       { return b.id }
func (b *moverBehavior) Name() string { return b.name }

func (b *moverBehavior) Routes(dir Direction, on bool) bool {
	return dir == b.dir
}

// filterBehavior — бинарный сортировщик: выключенные шарики проходят
// в сторону pass, включённые — в противоположную.
type filterBehavior struct {
	id   ID
	name string
	pass Direction
}

func (b *filterBehavior) ID() ID       { return b.id }
func (b *filterBehavior) Name() string { return b.name }

func (b *filterBehavior) Routes(dir Direction, on bool) bool {
	if on {
		return dir == b.pass.Opposite()
	}
	return dir == b.pass
}

// duplicatorBehavior — дупликатор: шарик может уйти в обе стороны своей оси;
// само дублирование (раз за тик) выполняет движок.
type duplicatorBehavior struct {
	id         ID
	name       string
	horizontal bool
}

func (b *duplicatorBehavior) ID() ID       { return b.id }
func (b *duplicatorBehavior) Name() string { return b.name }

func (b *duplicatorBehavior) Routes(dir Direction, on bool) bool {
	if b.horizontal {
		return dir == DirLeft || dir == DirRight
	}
	return dir == DirUp || dir == DirDown
}

// inertBehavior — тайлы, которые сами никуда шарик не отправляют:
// Hold, Block, Destroy и Empty. Их роль движок учитывает по ID.
type inertBehavior struct {
	id   ID
	name string
}

func (b *inertBehavior) ID() ID                             { return b.id }
func (b *inertBehavior) Name() string                       { return b.name }
func (b *inertBehavior) Routes(dir Direction, on bool) bool { return false }

func init() {
	Register(EmptyID, &inertBehavior{id: EmptyID, name: "Empty"})
	Register(UpID, &moverBehavior{id: UpID, name: "Up", dir: DirUp})
	Register(DownID, &moverBehavior{id: DownID, name: "Down", dir: DirDown})
	Register(LeftID, &moverBehavior{id: LeftID, name: "Left", dir: DirLeft})
	Register(RightID, &moverBehavior{id: RightID, name: "Right", dir: DirRight})
	Register(HoldID, &inertBehavior{id: HoldID, name: "Hold"})
	Register(BlockID, &inertBehavior{id: BlockID, name: "Block"})
	Register(DuplicateHorizontalID, &duplicatorBehavior{id: DuplicateHorizontalID, name: "DuplicateHorizontal", horizontal: true})
	Register(DuplicateVerticalID, &duplicatorBehavior{id: DuplicateVerticalID, name: "DuplicateVertical", horizontal: false})
	Register(FilterRightID, &filterBehavior{id: FilterRightID, name: "FilterRight", pass: DirRight})
	Register(FilterUpID, &filterBehavior{id: FilterUpID, name: "FilterUp", pass: DirUp})
	Register(FilterDownID, &filterBehavior{id: FilterDownID, name: "FilterDown", pass: DirDown})
	Register(FilterLeftID, &filterBehavior{id: FilterLeftID, name: "FilterLeft", pass: DirLeft})
	Register(DestroyID, &inertBehavior{id: DestroyID, name: "Destroy"})
}
