package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yml")
	content := `
sim:
  tps: 30
  autosave_every_seconds: 60
storage:
  data_path: /tmp/sandbox-data
metrics:
  port: 9100
generator:
  enabled: true
  seed: 42
  radius_chunks: 3
  density: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Ошибка записи тестового конфига: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфига: %v", err)
	}

	if cfg.Sim.GetTPS() != 30 {
		t.Errorf("Ожидался TPS=30, получено %d", cfg.Sim.GetTPS())
	}
	if cfg.Sim.GetAutosaveEvery() != 60 {
		t.Errorf("Ожидался автосейв 60с, получено %d", cfg.Sim.GetAutosaveEvery())
	}
	if cfg.Storage.GetDataPath() != "/tmp/sandbox-data" {
		t.Errorf("Неверная директория данных: %s", cfg.Storage.GetDataPath())
	}
	if cfg.Metrics.GetMetricsPort() != 9100 {
		t.Errorf("Ожидался порт 9100, получено %d", cfg.Metrics.GetMetricsPort())
	}
	if !cfg.Generator.Enabled || cfg.Generator.Seed != 42 {
		t.Errorf("Генератор прочитан неверно: %+v", cfg.Generator)
	}
}

func TestDefaults(t *testing.T) {
	os.Unsetenv("SANDBOX_TPS")
	os.Unsetenv("SANDBOX_METRICS_PORT")

	var cfg Config
	if cfg.Sim.GetTPS() != 60 {
		t.Errorf("Ожидался TPS по умолчанию 60, получено %d", cfg.Sim.GetTPS())
	}
	if cfg.Metrics.GetMetricsPort() != 2112 {
		t.Errorf("Ожидался порт по умолчанию 2112, получено %d", cfg.Metrics.GetMetricsPort())
	}
	if cfg.Storage.GetDataPath() == "" {
		t.Error("Директория данных по умолчанию не должна быть пустой")
	}
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("SANDBOX_TPS", "20")

	var cfg Config
	if cfg.Sim.GetTPS() != 20 {
		t.Errorf("ENV должен переопределять дефолт: получено %d", cfg.Sim.GetTPS())
	}

	// Значение из конфига имеет приоритет над ENV
	cfg.Sim.TPS = 90
	if cfg.Sim.GetTPS() != 90 {
		t.Errorf("Конфиг должен побеждать ENV: получено %d", cfg.Sim.GetTPS())
	}
}

func TestLoadMissingPathReturnsNil(t *testing.T) {
	t.Setenv("SANDBOX_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Отсутствие конфига не должно быть ошибкой: %v", err)
	}
	if cfg != nil {
		t.Error("Без пути должен вернуться nil-конфиг")
	}
}
