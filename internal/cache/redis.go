package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

const defaultTTL = 10 * time.Minute

// Cache stores catalog item metadata. Recommendations themselves are never
// cached; every request recomputes them.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(itemID domain.ItemID, language string) string {
	return fmt.Sprintf("catalog:item:%d:lang:%s", itemID, language)
}

// Get item metadata from cache. A miss returns found=false and no error.
func (c *Cache) Get(ctx context.Context, itemID domain.ItemID, language string) (*domain.ItemMetadata, bool, error) {
	key := buildKey(itemID, language)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get item metadata from cache: %w", err)
	}

	var meta domain.ItemMetadata
	if err := json.Unmarshal([]byte(val), &meta); err != nil {
		return nil, false, fmt.Errorf("unmarshal item metadata %s: %w", key, err)
	}
	return &meta, true, nil
}

// Store item metadata in cache
func (c *Cache) Set(ctx context.Context, meta *domain.ItemMetadata, language string) error {
	key := buildKey(meta.ID, language)
	val, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal item metadata: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set item metadata in cache: %w", err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
