package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/config"
	"catalog-backend/internal/shared"
	"catalog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisCfg config.RedisConfig, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Host,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs wires every recurring job. Call before Start.
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerAuditCleanupJob(); err != nil {
		return err
	}
	if err := s.registerTreeCacheWarmJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB 1: Audit Log Cleanup (Daily at 3 AM)
// ================================================
// Runs at low traffic so the retention delete never competes with the
// admin API for the audit table.
func (s *Scheduler) registerAuditCleanupJob() error {
	payload, err := json.Marshal(shared.AuditCleanupPayload{
		RetentionDays: s.jobConfig.AuditRetentionDays,
		EnqueuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupAuditEntries, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupAuditEntries job", err)
		return err
	}

	logger.Info("✓ Registered CleanupAuditEntries: daily at 3 AM", map[string]interface{}{
		"retention_days": s.jobConfig.AuditRetentionDays,
	})
	return nil
}

// ================================================
// JOB 2: Tree Cache Warmup (Hourly)
// ================================================
// Repopulates the category snapshot after TTL expiry or mutations so
// storefront tree reads stay on Redis.
func (s *Scheduler) registerTreeCacheWarmJob() error {
	if !s.jobConfig.CacheWarmEnabled {
		logger.Info("Tree cache warmup disabled by config", map[string]interface{}{})
		return nil
	}

	payload, err := json.Marshal(shared.TreeCacheWarmPayload{
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeWarmTreeCache, payload)

	_, err = s.scheduler.Register(
		"0 * * * *", // Hourly at minute 0
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register WarmTreeCache job", err)
		return err
	}

	logger.Info("✓ Registered WarmTreeCache: hourly", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
