package main

import (
	"github.com/hibiken/asynq"

	auditJob "catalog-backend/internal/domains/audit/job"
	categoryJob "catalog-backend/internal/domains/category/job"
	"catalog-backend/internal/shared"
	"catalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Audit handlers
	recordAuditEntry    *auditJob.RecordAuditEntryHandler
	cleanupAuditEntries *auditJob.CleanupAuditEntriesHandler

	// Maintenance handlers
	warmTreeCache *categoryJob.WarmTreeCacheHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		recordAuditEntry:    auditJob.NewRecordAuditEntryHandler(c.AuditRepo),
		cleanupAuditEntries: auditJob.NewCleanupAuditEntriesHandler(c.AuditRepo, c.Config.Jobs),
		warmTreeCache:       categoryJob.NewWarmTreeCacheHandler(c.CategoryRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Audit tasks
	mux.HandleFunc(shared.TypeRecordAuditEntry, h.recordAuditEntry.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupAuditEntries, h.cleanupAuditEntries.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeWarmTreeCache, h.warmTreeCache.ProcessTask)
}
