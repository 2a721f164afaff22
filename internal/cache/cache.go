package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/logger"
	"github.com/dmssspace/na-predele--crm-sub000/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Logical cache groups. Views read through these; every successful write
// invalidates the groups whose projections it may have changed.
const (
	KeySessions     = "sessions"
	KeyBookings     = "bookings"
	KeyVisits       = "visits"
	KeyAvailability = "availability"
)

const prefix = "cache:"

type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func New(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get loads the cached value under group/sub into dest. A miss, a decode
// failure or a redis error all report false; callers fall through to the
// database.
func (c *Cache) Get(ctx context.Context, group, sub string, dest interface{}) bool {
	data, err := c.rdb.Get(ctx, key(group, sub)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache get failed", "group", group, "error", err)
		}
		metrics.RecordCacheOp(group, "miss")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("cache entry corrupt", "group", group, "error", err)
		metrics.RecordCacheOp(group, "miss")
		return false
	}

	metrics.RecordCacheOp(group, "hit")
	return true
}

// Set stores v under group/sub. Failures are logged and swallowed: the
// cache is advisory, the database stays authoritative.
func (c *Cache) Set(ctx context.Context, group, sub string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache marshal failed", "group", group, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, key(group, sub), data, c.ttl).Err(); err != nil {
		logger.Warn("cache set failed", "group", group, "error", err)
	}
}

// Invalidate drops every entry of each given group, one pass per group.
func (c *Cache) Invalidate(ctx context.Context, groups ...string) {
	for _, group := range groups {
		keys, err := c.rdb.Keys(ctx, prefix+group+":*").Result()
		if err != nil {
			logger.Warn("cache invalidate scan failed", "group", group, "error", err)
			continue
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				logger.Warn("cache invalidate failed", "group", group, "error", err)
				continue
			}
		}
		metrics.RecordCacheOp(group, "invalidate")
	}
}

func key(group, sub string) string {
	return prefix + group + ":" + sub
}
