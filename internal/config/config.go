// Package config читает настройки сервиса из переменных окружения.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultShutdownTimeout = 5 * time.Second
)

// Config — настройки сервиса кружков.
type Config struct {
	// HTTPAddr — адрес, на котором слушает HTTP-сервер (HTTP_ADDR).
	HTTPAddr string
	// DBDSN — строка подключения к PostgreSQL (DB_DSN). Пусто — данные в памяти.
	DBDSN string
	// SeedFile — YAML со стартовым набором кружков (SEED_FILE). Пусто — встроенный набор.
	SeedFile string
	// ShutdownTimeout — сколько ждать завершения запросов при остановке (SHUTDOWN_TIMEOUT).
	ShutdownTimeout time.Duration
}

// Load собирает Config из окружения, подставляя значения по умолчанию.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPAddr:        defaultHTTPAddr,
		DBDSN:           getenv("DB_DSN"),
		SeedFile:        getenv("SEED_FILE"),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if v := getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}

	if v := getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", v)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}
