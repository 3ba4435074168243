package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/rs/zerolog/log"
)

// verifyRedis pings the broker before the worker accepts any work. Asynq
// shares the same connection settings, so one probe covers both.
func verifyRedis(cfg *Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis probe: %w", err)
	}
	return nil
}

// serveProbes exposes liveness and readiness endpoints for the
// orchestrator. Runs on its own goroutine for the process lifetime.
func serveProbes(port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeProbe(w, `{"status":"UP","service":"catalog-worker"}`)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) {
		writeProbe(w, `{"status":"READY"}`)
	})

	go func() {
		log.Info().Str("port", port).Msg("probe endpoint up")
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Error().Err(err).Msg("probe endpoint failed")
		}
	}()
}

func writeProbe(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
