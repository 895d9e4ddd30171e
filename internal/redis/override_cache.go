package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/maju6406/shundor-bot/internal/domain"
	"github.com/maju6406/shundor-bot/internal/metrics"
)

const overrideCachePrefix = "override_cache:"

// Cached override states. Absence of an override is cached too, so hot
// default-enabled triggers do not hammer PostgreSQL on every message.
const (
	cachedEnabled  = "1"
	cachedDisabled = "0"
	cachedAbsent   = "-"
)

// OverrideCache provides read-through caching for trigger overrides:
// Redis → PostgreSQL. Writes go through to the store and refresh the cache
// entry in place. Concurrent misses for the same pair collapse into a
// single store query via singleflight.
type OverrideCache struct {
	rdb   goredis.Cmdable
	store domain.OverrideStore
	ttl   time.Duration
	group singleflight.Group
}

var _ domain.OverrideStore = (*OverrideCache)(nil)

func NewOverrideCache(rdb goredis.Cmdable, store domain.OverrideStore, ttl time.Duration) *OverrideCache {
	return &OverrideCache{rdb: rdb, store: store, ttl: ttl}
}

func overrideCacheKey(scopeID, triggerID string) string {
	return fmt.Sprintf("%s%s:%s", overrideCachePrefix, scopeID, triggerID)
}

func (c *OverrideCache) GetOverride(ctx context.Context, scopeID, triggerID string) (enabled, found bool, err error) {
	key := overrideCacheKey(scopeID, triggerID)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		switch cached {
		case cachedEnabled:
			metrics.OverrideCacheHits.Inc()
			return true, true, nil
		case cachedDisabled:
			metrics.OverrideCacheHits.Inc()
			return false, true, nil
		case cachedAbsent:
			metrics.OverrideCacheHits.Inc()
			return false, false, nil
		default:
			slog.WarnContext(ctx, "Unexpected override cache value, falling through to store",
				"key", key, "value", cached)
		}
	} else if !errors.Is(err, goredis.Nil) {
		// Redis error — log and fall through to PostgreSQL.
		slog.WarnContext(ctx, "Override cache GET failed, falling through to store",
			"key", key, "error", err)
	}

	metrics.OverrideCacheMisses.Inc()

	type lookup struct {
		enabled bool
		found   bool
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		enabled, found, err := c.store.GetOverride(ctx, scopeID, triggerID)
		if err != nil {
			return nil, err
		}
		c.populate(ctx, key, enabled, found)
		return lookup{enabled: enabled, found: found}, nil
	})
	if err != nil {
		return false, false, err
	}

	result := v.(lookup)
	return result.enabled, result.found, nil
}

func (c *OverrideCache) SetOverride(ctx context.Context, scopeID, triggerID string, enabled bool) error {
	if err := c.store.SetOverride(ctx, scopeID, triggerID, enabled); err != nil {
		return err
	}
	c.populate(ctx, overrideCacheKey(scopeID, triggerID), enabled, true)
	return nil
}

// populate writes a cache entry best-effort; a failed write only means the
// next read falls through to the store again.
func (c *OverrideCache) populate(ctx context.Context, key string, enabled, found bool) {
	value := cachedAbsent
	if found {
		value = cachedDisabled
		if enabled {
			value = cachedEnabled
		}
	}
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Failed to populate override cache", "key", key, "error", err)
	}
}
