package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/conveyor-game/internal/config"
	"github.com/annel0/conveyor-game/internal/eventbus"
	"github.com/annel0/conveyor-game/internal/logging"
	"github.com/annel0/conveyor-game/internal/metrics"
	"github.com/annel0/conveyor-game/internal/storage"
	"github.com/annel0/conveyor-game/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или ENV SANDBOX_CONFIG)")
	headlessTicks := flag.Uint64("ticks", 0, "выполнить N тиков и выйти (0 — работать до сигнала)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("sandbox"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🎮 Запуск песочницы конвейеров...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{} // дефолты
	}

	tps := cfg.Sim.GetTPS()
	logging.Info("📡 Конфигурация: TPS=%d, данные=%s, метрики=:%d", tps, cfg.Storage.GetDataPath(), cfg.Metrics.GetMetricsPort())

	// === ШИНА СОБЫТИЙ ===
	bus := eventbus.NewMemoryBus(1024)
	eventbus.Init(bus)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("Не удалось подписать лог-листенер: %v", err)
	}

	// === МЕТРИКИ ===
	metrics.StartHTTP(fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort()))
	processStats := metrics.NewProcessStats()

	// === МИР ===
	wm := world.NewWorldManager()

	ws, err := storage.NewWorldStorage(cfg.Storage.GetDataPath())
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer ws.Close()

	meta, err := ws.LoadWorld(wm)
	if err != nil {
		logging.Error("❌ Ошибка загрузки снимка мира: %v", err)
		log.Fatalf("❌ Ошибка загрузки снимка мира: %v", err)
	}
	switch {
	case meta != nil:
		logging.Info("📦 Снимок %s восстановлен: %d чанков, %d шариков (тик %d)",
			meta.ID, meta.Chunks, meta.Tokens, meta.Tick)
	case cfg.Generator.Enabled:
		gen := world.NewDemoGenerator(cfg.Generator.Seed, cfg.Generator.Density)
		radius := cfg.Generator.Radius
		if radius <= 0 {
			radius = 2
		}
		gen.Populate(wm, radius)
		logging.Info("🌍 Сгенерирована демо-сцена: %d чанков, %d шариков", wm.ChunkCount(), wm.TokenCount())
	default:
		logging.Info("🌍 Мир пуст — ожидаются команды редактирования")
	}

	// === ГЛАВНЫЙ ЦИКЛ ===
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	tickTicker := time.NewTicker(time.Second / time.Duration(tps))
	defer tickTicker.Stop()

	autosaveTicker := time.NewTicker(time.Duration(cfg.Sim.GetAutosaveEvery()) * time.Second)
	defer autosaveTicker.Stop()

	statusTicker := time.NewTicker(time.Minute)
	defer statusTicker.Stop()

	logging.Info("✅ Песочница запущена (%d TPS)", tps)

	for {
		select {
		case sig := <-sigChan:
			logging.Info("🛑 Получен сигнал %v, сохраняем мир и завершаемся...", sig)
			saveWorld(ws, wm)
			return

		case <-tickTicker.C:
			wm.StepTick()
			if *headlessTicks > 0 && wm.TickID() >= *headlessTicks {
				logging.Info("🏁 Выполнено %d тиков, завершаемся", wm.TickID())
				saveWorld(ws, wm)
				return
			}

		case <-autosaveTicker.C:
			saveWorld(ws, wm)

		case <-statusTicker.C:
			cpuUsage, _ := processStats.GetCPUUsage()
			logging.GetSimLogger().Info("📊 tick=%d chunks=%d tokens=%d uptime=%s mem=%.1fMB cpu=%.1f%%",
				wm.TickID(), wm.ChunkCount(), wm.TokenCount(),
				processStats.GetUptime(), processStats.GetMemoryUsage(), cpuUsage)
		}
	}
}

// saveWorld сохраняет снимок мира, не прерывая работу при ошибке
func saveWorld(ws *storage.WorldStorage, wm *world.WorldManager) {
	storageLog := logging.GetStorageLogger()
	meta, err := ws.SaveWorld(wm)
	if err != nil {
		storageLog.Error("Ошибка сохранения мира: %v", err)
		return
	}
	storageLog.Info("💾 Мир сохранён: снимок %s (%d чанков, %d шариков)", meta.ID, meta.Chunks, meta.Tokens)
}
