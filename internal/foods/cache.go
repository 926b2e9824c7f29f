package foods

import (
	"context"
	"encoding/json"

	"github.com/Zuby128/restorder-admin/pkg/cache"
)

type storeMenuCache struct {
	store *cache.Store
}

// NewMenuCache adapts the shared Redis cache store to the menu cache surface.
func NewMenuCache(store *cache.Store) MenuCache {
	return &storeMenuCache{store: store}
}

func (c *storeMenuCache) PutList(ctx context.Context, scope, id string, value any) error {
	return c.store.Put(ctx, scope, id, value)
}

func (c *storeMenuCache) GetList(ctx context.Context, scope, id string, out any) (bool, bool, error) {
	entry, found, fresh, err := c.store.Get(ctx, scope, id)
	if err != nil || !found {
		return false, false, err
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return false, false, nil
	}
	return true, fresh, nil
}

func (c *storeMenuCache) Invalidate(ctx context.Context, scope, id string) error {
	return c.store.Invalidate(ctx, scope, id)
}
