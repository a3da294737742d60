package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	cacheIDList = "catalog:product_ids"
	cacheTTL    = 5 * time.Minute
)

// Cache keeps the full product list in Redis so catalog reads skip the
// database on the hot path. A nil *Cache disables caching.
type Cache struct {
	client *redis.Client
}

// NewCache wraps a Redis client for product caching.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func productKey(id string) string { return "catalog:product:" + id }

// GetAll returns the cached product list, or an error on any cache miss so
// the caller falls back to the database.
func (c *Cache) GetAll(ctx context.Context) ([]*Product, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("cache disabled")
	}
	// The id list preserves the repository's newest-first ordering.
	ids, err := c.client.LRange(ctx, cacheIDList, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cacheIDList, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("cache list %s is empty", cacheIDList)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	results, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget products: %w", err)
	}

	products := make([]*Product, 0, len(results))
	for _, res := range results {
		raw, ok := res.(string)
		if !ok {
			// Evicted or expired entry; force a full DB refresh rather
			// than serving a partial catalog.
			return nil, fmt.Errorf("partial cache, forcing db fetch")
		}
		p := &Product{}
		if err := json.Unmarshal([]byte(raw), p); err != nil {
			return nil, fmt.Errorf("unmarshal cached product: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// Populate replaces the cached catalog with the given list, keeping its order.
func (c *Cache) Populate(ctx context.Context, products []*Product) error {
	if c == nil || c.client == nil {
		return nil
	}
	pipe := c.client.Pipeline()
	ids := make([]interface{}, 0, len(products))
	for _, p := range products {
		raw, err := json.Marshal(p)
		if err != nil {
			log.Printf("catalog cache: marshal product %s: %v", p.ID, err)
			continue
		}
		pipe.Set(ctx, productKey(p.ID.String()), raw, cacheTTL)
		ids = append(ids, p.ID.String())
	}
	pipe.Del(ctx, cacheIDList)
	if len(ids) > 0 {
		pipe.RPush(ctx, cacheIDList, ids...)
		pipe.Expire(ctx, cacheIDList, cacheTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("populate catalog cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached id list so the next read goes to the database.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheIDList).Err(); err != nil {
		log.Printf("catalog cache: invalidate: %v", err)
	}
}
