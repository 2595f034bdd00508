package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values come from the environment; a
// .env file is loaded first when present.
type Config struct {
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Port int

	// OverReceiveTolerancePct widens the over-receipt boundary: receipts up
	// to expected*(1+pct/100) count as over_received instead of mis_sort.
	OverReceiveTolerancePct int

	// StaleReceivingHours is how long a receiving order may sit without
	// activity before the anomaly scan flags it.
	StaleReceivingHours int
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		RedisAddr:               envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 envIntOr("REDIS_DB", 0),
		Port:                    envIntOr("PORT", 8080),
		OverReceiveTolerancePct: envIntOr("OVER_RECEIVE_TOLERANCE_PCT", 0),
		StaleReceivingHours:     envIntOr("STALE_RECEIVING_HOURS", 24),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.OverReceiveTolerancePct < 0 {
		return nil, fmt.Errorf("OVER_RECEIVE_TOLERANCE_PCT must not be negative")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
