package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"catalog-backend/pkg/container"
	"catalog-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, reading process environment")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("container init failed")
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	cfg := loadConfig()
	if err := verifyRedis(cfg); err != nil {
		log.Fatal().Err(err).Msg("startup check failed")
	}

	srv := newAsynqServer(cfg)
	runAsynqServer(srv, initializeHandlers(c))
	scheduler := startScheduler(c)
	serveProbes(cfg.HealthPort)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("draining worker")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("worker stopped")
}
