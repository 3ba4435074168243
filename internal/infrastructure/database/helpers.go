package database

import (
	"fmt"
	"time"
)

// PoolStats is a snapshot of pool metrics, exposed by the health endpoint.
type PoolStats struct {
	AcquiredConns int32         `json:"acquired_conns"`
	IdleConns     int32         `json:"idle_conns"`
	TotalConns    int32         `json:"total_conns"`
	MaxConns      int32         `json:"max_conns"`
	AcquireCount  int64         `json:"acquire_count"`
	AcquireWait   time.Duration `json:"acquire_wait"`
	NewConnsCount int64         `json:"new_conns_count"`
}

// Stats returns a consistent snapshot of the pool's statistics.
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns: raw.AcquiredConns(),
		IdleConns:     raw.IdleConns(),
		TotalConns:    raw.TotalConns(),
		MaxConns:      raw.MaxConns(),
		AcquireCount:  raw.AcquireCount(),
		AcquireWait:   raw.AcquireDuration(),
		NewConnsCount: raw.NewConnsCount(),
	}, nil
}
