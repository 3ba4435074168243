package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the worker process itself. Database
// and job settings come from the shared container config.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
	HealthPort    string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:     envString("REDIS_HOST", "localhost:6379"),
		RedisPassword: envString("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),
		Concurrency:   envInt("WORKER_CONCURRENCY", 10),
		HealthPort:    envString("WORKER_HEALTH_PORT", "9999"),
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.Concurrency).
		Msg("worker config loaded")

	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
