package cache

import (
	"context"
	"time"
)

// Cache is the contract the catalog service works against so the backing
// store (Redis today) can be swapped without touching repositories.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern,
	// used to invalidate the category snapshot after mutations.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
