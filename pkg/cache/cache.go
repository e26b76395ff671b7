// Package cache provides content-addressed caching for compiled timetables
// and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: JSON envelopes under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// All backends satisfy [Cache] and are safe for concurrent use.
//
// # Keys
//
// A [Keyer] derives keys from content hashes, so an edited document never
// reuses a stale grid:
//
//	k := cache.NewDefaultKeyer()
//	key := k.TimetableKey(cache.Hash(documentBytes))
//	artifact := k.ArtifactKey(timetableHash, cache.ArtifactKeyOpts{Format: "svg"})
//
// [ScopedKeyer] prefixes every key, so several tenants can share one Redis.
package cache

import (
	"context"
	"time"
)

// TTLs per entry type.
const (
	// TTLTimetable is how long a compiled grid stays cached. Grids are keyed
	// by document hash and never go stale, so this only bounds disk use.
	TTLTimetable = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
