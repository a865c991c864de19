package config

import (
	"io/ioutil"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации песочницы.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Generator GeneratorConfig `yaml:"generator"`
}

type SimConfig struct {
	TPS           int `yaml:"tps"`
	AutosaveEvery int `yaml:"autosave_every_seconds"`
}

type StorageConfig struct {
	DataPath string `yaml:"data_path"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type GeneratorConfig struct {
	Enabled bool    `yaml:"enabled"`
	Seed    int64   `yaml:"seed"`
	Radius  int     `yaml:"radius_chunks"`
	Density float64 `yaml:"density"`
}

// GetTPS возвращает частоту тиков с поддержкой fallback значений
func (s *SimConfig) GetTPS() int {
	return getIntWithEnvFallback(s.TPS, "SANDBOX_TPS", 60)
}

// GetAutosaveEvery возвращает период автосохранения в секундах
func (s *SimConfig) GetAutosaveEvery() int {
	return getIntWithEnvFallback(s.AutosaveEvery, "SANDBOX_AUTOSAVE_SECONDS", 300)
}

// GetDataPath возвращает директорию данных с поддержкой fallback значений
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if envVal := os.Getenv("SANDBOX_DATA"); envVal != "" {
		return envVal
	}
	return "data"
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(m.Port, "SANDBOX_METRICS_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV SANDBOX_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SANDBOX_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
