package domain

import (
	"time"

	"github.com/google/uuid"
)

// PointEvent is one append-only row in the points ledger. Rows are never
// updated or deleted; totals are always recomputed by summation.
type PointEvent struct {
	ID         uuid.UUID
	ScopeID    string
	GiverID    string
	ReceiverID string
	Points     int
	CreatedAt  time.Time
}

// LeaderboardRow is a derived ranking entry, ordered by points descending
// with ties broken by ascending user id.
type LeaderboardRow struct {
	UserID string
	Points int64
}

// AwardResult reports one receiver of an award together with their
// recomputed all-time total.
type AwardResult struct {
	ReceiverID string
	Total      int64
}
