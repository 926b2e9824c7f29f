// Package cache provides a small read-through cache on top of Redis for
// menu-style data that tolerates short staleness windows.
package cache

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Zuby128/restorder-admin/pkg/config"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/redis"
)

// Entry wraps a cached payload with the time it was fetched from the source
// of truth. Staleness is decided by the reader, not by key expiry, so an
// expired-but-present entry can still be served while a refresh is underway.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// IsStale reports whether the entry's payload is older than timeout as of now.
// A zero FetchedAt is always stale.
func IsStale(entry Entry, timeout time.Duration, now time.Time) bool {
	if entry.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(entry.FetchedAt) > timeout
}

type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope, id string) string
}

// Store persists entries in Redis under the shared cache prefix.
type Store struct {
	client store
	cfg    config.CacheConfig
	now    func() time.Time
}

// NewStore wires a cache store over the shared Redis client.
func NewStore(client *redis.Client, cfg config.CacheConfig) *Store {
	return &Store{client: client, cfg: cfg, now: time.Now}
}

// Put marshals value into an Entry stamped with the current time.
func (s *Store) Put(ctx context.Context, scope, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshaling cache value")
	}
	entry := Entry{Value: raw, FetchedAt: s.now()}
	payload, err := json.Marshal(entry)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshaling cache entry")
	}
	key := s.client.CacheKey(scope, id)
	return s.client.Set(ctx, key, string(payload), s.cfg.EntryTTL)
}

// Get loads the entry for scope/id and reports whether it exists and whether
// it is fresh enough to serve. A missing key is (zero, false, false, nil).
func (s *Store) Get(ctx context.Context, scope, id string) (Entry, bool, bool, error) {
	key := s.client.CacheKey(scope, id)
	raw, err := s.client.Get(ctx, key)
	if err == goredis.Nil {
		return Entry{}, false, false, nil
	}
	if err != nil {
		return Entry{}, false, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading cache entry")
	}
	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// Corrupt payloads are treated as a miss so the caller refreshes.
		return Entry{}, false, false, nil
	}
	fresh := !IsStale(entry, s.cfg.MenuTimeout, s.now())
	return entry, true, fresh, nil
}

// Invalidate drops the entry for scope/id.
func (s *Store) Invalidate(ctx context.Context, scope, id string) error {
	return s.client.Del(ctx, s.client.CacheKey(scope, id))
}
