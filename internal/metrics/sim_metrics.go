package metrics

import (
	"net/http"
	"time"

	"github.com/annel0/conveyor-game/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики движка симуляции:
// * sim_ticks_total — counter
// * sim_tick_duration_seconds — histogram
// * sim_token_moves_total / sim_token_duplications_total / sim_token_destructions_total — counters
// * sim_active_tokens / sim_active_chunks — gauges

var (
	ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "ticks_total",
		Help:      "Общее число выполненных тиков симуляции.",
	})
	tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sim",
		Name:      "tick_duration_seconds",
		Help:      "Длительность одного тика симуляции.",
		Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})
	tokenMoves = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "token_moves_total",
		Help:      "Общее число перемещений шариков.",
	})
	tokenDuplications = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "token_duplications_total",
		Help:      "Общее число дублирований шариков.",
	})
	tokenDestructions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "token_destructions_total",
		Help:      "Общее число уничтоженных шариков.",
	})
	activeTokens = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sim",
		Name:      "active_tokens",
		Help:      "Текущее количество шариков в мире.",
	})
	activeChunks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sim",
		Name:      "active_chunks",
		Help:      "Текущее количество материализованных чанков.",
	})
)

func init() {
	prometheus.MustRegister(ticksTotal, tickDuration, tokenMoves, tokenDuplications, tokenDestructions, activeTokens, activeChunks)
}

// ObserveTick фиксирует результат одного тика симуляции
func ObserveTick(duration time.Duration, moved, duplicated, destroyed, tokens, chunks int) {
	ticksTotal.Inc()
	tickDuration.Observe(duration.Seconds())
	tokenMoves.Add(float64(moved))
	tokenDuplications.Add(float64(duplicated))
	tokenDestructions.Add(float64(destroyed))
	activeTokens.Set(float64(tokens))
	activeChunks.Set(float64(chunks))
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func StartHTTP(addr string) {
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}
