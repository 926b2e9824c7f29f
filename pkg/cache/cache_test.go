package cache

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuby128/restorder-admin/pkg/config"
)

func TestIsStale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		fetchedAt time.Time
		timeout   time.Duration
		want      bool
	}{
		{name: "fresh", fetchedAt: now.Add(-2 * time.Minute), timeout: 5 * time.Minute, want: false},
		{name: "exactly at timeout", fetchedAt: now.Add(-5 * time.Minute), timeout: 5 * time.Minute, want: false},
		{name: "past timeout", fetchedAt: now.Add(-5*time.Minute - time.Second), timeout: 5 * time.Minute, want: true},
		{name: "zero fetched at", fetchedAt: time.Time{}, timeout: 5 * time.Minute, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsStale(Entry{FetchedAt: tc.fetchedAt}, tc.timeout, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

type fakeStore struct {
	data map[string]string
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeStore) CacheKey(scope, id string) string {
	return strings.Join([]string{"ro", "cache", scope, id}, ":")
}

func newTestStore(timeout time.Duration) (*Store, *fakeStore) {
	fake := &fakeStore{data: make(map[string]string)}
	s := &Store{
		client: fake,
		cfg:    config.CacheConfig{MenuTimeout: timeout, EntryTTL: time.Hour},
		now:    time.Now,
	}
	return s, fake
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(5 * time.Minute)

	type menuItem struct {
		Name string `json:"name"`
	}
	require.NoError(t, s.Put(ctx, "foods", "R-1", []menuItem{{Name: "lahmacun"}}))

	entry, found, fresh, err := s.Get(ctx, "foods", "R-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, fresh)

	var items []menuItem
	require.NoError(t, json.Unmarshal(entry.Value, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "lahmacun", items[0].Name)
}

func TestStoreGetMiss(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(5 * time.Minute)

	_, found, fresh, err := s.Get(ctx, "foods", "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, fresh)
}

func TestStoreStaleEntryStillReturned(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(5 * time.Minute)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	require.NoError(t, s.Put(ctx, "foods", "R-1", "menu"))

	s.now = func() time.Time { return base.Add(10 * time.Minute) }
	entry, found, fresh, err := s.Get(ctx, "foods", "R-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, fresh)
	assert.Equal(t, base, entry.FetchedAt.UTC())
}

func TestStoreCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestStore(5 * time.Minute)
	fake.data["ro:cache:foods:R-1"] = "{not-json"

	_, found, _, err := s.Get(ctx, "foods", "R-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(5 * time.Minute)

	require.NoError(t, s.Put(ctx, "foods", "R-1", "menu"))
	require.NoError(t, s.Invalidate(ctx, "foods", "R-1"))

	_, found, _, err := s.Get(ctx, "foods", "R-1")
	require.NoError(t, err)
	assert.False(t, found)
}
