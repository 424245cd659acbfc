// Package cache provides a backend-agnostic key/value cache. Callers never
// learn which backend is active; the implementation is chosen once at
// process start.
package cache

import (
	"context"
	"time"
)

// Cache is the contract both backends satisfy. Get reports a miss with
// ok=false; an expired entry is a miss, not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
