package main

import (
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/infrastructure/queue"
	"catalog-backend/pkg/container"
)

// startScheduler registers the cron entries and runs the asynq scheduler
// on its own goroutine. Registration failures are fatal: a worker without
// its crons silently stops cleaning the audit trail.
func startScheduler(c *container.Container) *queue.Scheduler {
	s := queue.NewScheduler(c.Config.Redis, c.Config.Jobs)

	if err := s.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("cron registration failed")
	}

	go func() {
		if err := s.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler terminated")
		}
	}()

	return s
}
