package config

import (
	"fmt"
	"strconv"
	"time"

	"catalog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig reads pool settings from environment variables.
// Malformed numbers and durations are hard errors here, unlike the app
// config, because a silently wrong pool size is worse than a failed boot.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var errs []error
	intEnv := func(key string, def int) int32 {
		raw := getEnv(key, strconv.Itoa(def))
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q", key, raw))
		}
		return int32(v)
	}
	durEnv := func(key, def string) time.Duration {
		raw := getEnv(key, def)
		v, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q", key, raw))
		}
		return v
	}

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              int(intEnv("DB_PORT", 5432)),
		Username:          getEnv("DB_USER", "catalog"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "catalog_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          intEnv("DB_MAX_CONNECTIONS", 25),
		MinConns:          intEnv("DB_MIN_CONNECTIONS", 5),
		MaxConnLifetime:   durEnv("DB_MAX_CONN_LIFETIME", "5m"),
		MaxConnIdleTime:   durEnv("DB_MAX_CONN_IDLE_TIME", "1m"),
		HealthCheckPeriod: durEnv("DB_HEALTH_CHECK_PERIOD", "1m"),
		MaxRetries:        int(intEnv("DB_MAX_RETRIES", 5)),
		RetryDelay:        durEnv("DB_RETRY_DELAY", "1s"),
		ConnectTimeout:    durEnv("DB_CONNECT_TIMEOUT", "10s"),
	}

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return cfg, nil
}
