package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/maju6406/shundor-bot/internal/domain"
)

const giverCooldownPrefix = "points:cooldown:"

// GiverCooldowns tracks the giver-side points cooldown in Redis. The TTL on
// the key is the cooldown itself, so expiry needs no sweeper and survives
// process restarts.
type GiverCooldowns struct {
	rdb goredis.Cmdable
}

var _ domain.GiverCooldowns = (*GiverCooldowns)(nil)

func NewGiverCooldowns(rdb goredis.Cmdable) *GiverCooldowns {
	return &GiverCooldowns{rdb: rdb}
}

func giverCooldownKey(scopeID, giverID string) string {
	return fmt.Sprintf("%s%s:%s", giverCooldownPrefix, scopeID, giverID)
}

func (g *GiverCooldowns) Remaining(ctx context.Context, scopeID, giverID string) (time.Duration, error) {
	ttl, err := g.rdb.PTTL(ctx, giverCooldownKey(scopeID, giverID)).Result()
	if err != nil {
		return 0, fmt.Errorf("reading giver cooldown: %w", err)
	}
	// PTTL reports negative durations for missing keys and keys without
	// an expiry; both mean no active cooldown.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (g *GiverCooldowns) Set(ctx context.Context, scopeID, giverID string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if err := g.rdb.Set(ctx, giverCooldownKey(scopeID, giverID), "1", d).Err(); err != nil {
		return fmt.Errorf("arming giver cooldown: %w", err)
	}
	return nil
}
