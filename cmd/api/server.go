package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-backend/pkg/container"
)

const shutdownGrace = 15 * time.Second

// Serve builds the container, wires the router and runs the HTTP server
// until SIGINT/SIGTERM, then drains in-flight requests.
func Serve() {
	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("container init failed")
	}
	defer c.Cleanup()

	srv := &http.Server{
		Addr:           ":" + c.Config.App.Port,
		Handler:        SetupRouter(c),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", c.Config.App.Environment).
			Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("api serve failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Warn().Err(err).Msg("forced shutdown")
		return
	}
	log.Info().Msg("api stopped")
}
