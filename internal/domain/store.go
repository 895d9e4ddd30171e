package domain

import (
	"context"
	"time"
)

// KVStore is a namespaced key-value store with JSON-encoded values.
type KVStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
}

// OverrideStore reads and writes the per-scope trigger enable overrides.
// found=false means no override exists for the pair, which callers must
// treat as "enabled".
type OverrideStore interface {
	GetOverride(ctx context.Context, scopeID, triggerID string) (enabled, found bool, err error)
	SetOverride(ctx context.Context, scopeID, triggerID string, enabled bool) error
}

// LedgerStore is the append-only points ledger with its two read paths.
type LedgerStore interface {
	AppendPointEvent(ctx context.Context, event PointEvent) error
	SumPointsForUser(ctx context.Context, scopeID, receiverID string) (int64, error)
	// TopPointsSince returns summed-by-receiver totals for events with
	// CreatedAt >= since (unfiltered when since is nil), ranked by points
	// descending then receiver id ascending.
	TopPointsSince(ctx context.Context, scopeID string, since *time.Time, limit int) ([]LeaderboardRow, error)
}

// GiverCooldowns tracks the giver-side points cooldown. It is separate from
// the dispatch engine's per-trigger cooldowns so the award command and the
// ambient "points!" rule share one budget per giver.
type GiverCooldowns interface {
	Remaining(ctx context.Context, scopeID, giverID string) (time.Duration, error)
	Set(ctx context.Context, scopeID, giverID string, d time.Duration) error
}
