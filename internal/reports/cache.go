package reports

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps computed daily totals in Redis so repeated report views do
// not rescan the ledger. A nil client degrades to cache misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds a Cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetTotal reads a cached cents total.
func (c *Cache) GetTotal(ctx context.Context, key string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	total, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return total, true
}

// SetTotal stores a cents total. Failures are swallowed; the cache is an
// optimisation, never an authority.
func (c *Cache) SetTotal(ctx context.Context, key string, total int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, strconv.FormatInt(total, 10), c.ttl).Err()
}
