package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// queuePriorities favors audit writes over maintenance work.
var queuePriorities = map[string]int{
	"high":    20,
	"default": 10,
	"low":     5,
}

func newAsynqServer(cfg *Config) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Queues:      queuePriorities,
			Concurrency: cfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("task", task.Type()).Msg("task failed")
			}),
		},
	)
}

// runAsynqServer starts the server on its own goroutine; asynq.Server
// keeps its own worker pool so Run only blocks the spawned goroutine.
func runAsynqServer(srv *asynq.Server, handlers *HandlerRegistry) {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	go func() {
		log.Info().Int("queues", len(queuePriorities)).Msg("worker started")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker terminated")
		}
	}()
}
