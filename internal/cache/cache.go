// Package cache provides the dashboard view cache. Entries carry a
// per-key generation counter: Invalidate bumps the generation, and a Put
// computed against an older generation is dropped. That gives
// latest-refresh-wins semantics without cancelling in-flight fetches.
package cache

import (
	"context"
	"time"
)

// Store is the injectable cache contract used by the dashboard handler.
// Values are opaque serialized payloads so backends stay interchangeable.
type Store interface {
	// Get returns the cached payload and the key's current generation.
	// The generation is valid even on a miss; callers pass it back to Put.
	Get(ctx context.Context, key string) ([]byte, uint64, bool)

	// Put stores a payload computed while the key was at generation gen.
	// It reports false, storing nothing, if the key has been invalidated
	// since.
	Put(ctx context.Context, key string, gen uint64, value []byte) bool

	// Invalidate drops the cached payload and bumps the generation so
	// that stale in-flight fetches cannot repopulate the key.
	Invalidate(ctx context.Context, key string)
}

// Memory is the in-process Store used when no Redis address is configured
func Memory(ttl time.Duration) Store {
	return newMemoryStore(ttl)
}
