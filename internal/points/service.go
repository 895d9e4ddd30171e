package points

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/maju6406/shundor-bot/internal/domain"
	"github.com/maju6406/shundor-bot/internal/metrics"
)

// Service implements the points ledger operations on top of the append-only
// store. Totals are always recomputed by summation; the service never keeps
// a counter of its own.
type Service struct {
	ledger    domain.LedgerStore
	cooldowns domain.GiverCooldowns
	clock     clockwork.Clock

	maxGrant         int
	giverCooldown    time.Duration
	leaderboardLimit int
}

func NewService(ledger domain.LedgerStore, cooldowns domain.GiverCooldowns, clock clockwork.Clock, maxGrant, cooldownSeconds, leaderboardLimit int) *Service {
	return &Service{
		ledger:           ledger,
		cooldowns:        cooldowns,
		clock:            clock,
		maxGrant:         maxGrant,
		giverCooldown:    time.Duration(cooldownSeconds) * time.Second,
		leaderboardLimit: leaderboardLimit,
	}
}

// GiverCooldownRemaining reports how long the giver must still wait before
// awarding again. Zero means the giver is free to award.
func (s *Service) GiverCooldownRemaining(ctx context.Context, scopeID, giverID string) (time.Duration, error) {
	return s.cooldowns.Remaining(ctx, scopeID, giverID)
}

// ArmGiverCooldown starts the configured cooldown for a giver. Callers arm
// it themselves after a successful award, so call sites can carry different
// rate-limit policies over the same award path.
func (s *Service) ArmGiverCooldown(ctx context.Context, scopeID, giverID string) error {
	return s.cooldowns.Set(ctx, scopeID, giverID, s.giverCooldown)
}

// Award appends one grant to the ledger and returns the receiver's
// recomputed all-time total. The giver cooldown is neither checked nor
// armed here; callers own both sides of that policy.
func (s *Service) Award(ctx context.Context, scopeID, giverID string, receiver domain.Member, amount int) (int64, error) {
	if amount < 1 || amount > s.maxGrant {
		metrics.PointsAwardFailures.WithLabelValues("validation").Inc()
		return 0, fmt.Errorf("amount %d outside 1..%d: %w", amount, s.maxGrant, domain.ErrInvalidAmount)
	}
	if receiver.IsBot {
		metrics.PointsAwardFailures.WithLabelValues("validation").Inc()
		return 0, domain.ErrBotRecipient
	}
	if receiver.ID == giverID {
		metrics.PointsAwardFailures.WithLabelValues("validation").Inc()
		return 0, domain.ErrSelfAward
	}

	event := domain.PointEvent{
		ID:         uuid.New(),
		ScopeID:    scopeID,
		GiverID:    giverID,
		ReceiverID: receiver.ID,
		Points:     amount,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.ledger.AppendPointEvent(ctx, event); err != nil {
		metrics.PointsAwardFailures.WithLabelValues("append").Inc()
		return 0, fmt.Errorf("appending point event: %w", err)
	}
	metrics.PointsAwarded.Add(float64(amount))

	total, err := s.ledger.SumPointsForUser(ctx, scopeID, receiver.ID)
	if err != nil {
		metrics.PointsAwardFailures.WithLabelValues("sum").Inc()
		return 0, fmt.Errorf("summing points for %s: %w", receiver.ID, err)
	}
	return total, nil
}

// AwardBulk grants the same amount to every receiver with one shared
// timestamp. Invalid receivers (bots, the giver) are silently skipped, and
// a failed append for one receiver does not abort the rest; the returned
// results cover only the receivers whose grants landed.
func (s *Service) AwardBulk(ctx context.Context, scopeID, giverID string, receivers []domain.Member, amount int) ([]domain.AwardResult, error) {
	if amount < 1 || amount > s.maxGrant {
		metrics.PointsAwardFailures.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("amount %d outside 1..%d: %w", amount, s.maxGrant, domain.ErrInvalidAmount)
	}

	now := s.clock.Now()
	results := make([]domain.AwardResult, 0, len(receivers))

	for _, receiver := range receivers {
		if receiver.IsBot || receiver.ID == giverID {
			continue
		}

		event := domain.PointEvent{
			ID:         uuid.New(),
			ScopeID:    scopeID,
			GiverID:    giverID,
			ReceiverID: receiver.ID,
			Points:     amount,
			CreatedAt:  now,
		}
		if err := s.ledger.AppendPointEvent(ctx, event); err != nil {
			metrics.PointsAwardFailures.WithLabelValues("append").Inc()
			slog.ErrorContext(ctx, "Bulk award append failed", "scope_id", scopeID, "receiver_id", receiver.ID, "error", err)
			continue
		}
		metrics.PointsAwarded.Add(float64(amount))

		total, err := s.ledger.SumPointsForUser(ctx, scopeID, receiver.ID)
		if err != nil {
			metrics.PointsAwardFailures.WithLabelValues("sum").Inc()
			slog.ErrorContext(ctx, "Bulk award total lookup failed", "scope_id", scopeID, "receiver_id", receiver.ID, "error", err)
			continue
		}
		results = append(results, domain.AwardResult{ReceiverID: receiver.ID, Total: total})
	}

	return results, nil
}

// TopPoints returns the ranked leaderboard for the window containing the
// current time. A non-positive limit falls back to the configured default.
func (s *Service) TopPoints(ctx context.Context, scopeID string, w Window, limit int) ([]domain.LeaderboardRow, error) {
	if limit <= 0 {
		limit = s.leaderboardLimit
	}

	var since *time.Time
	if start, bounded := WindowStart(s.clock.Now(), w); bounded {
		since = &start
	}

	rows, err := s.ledger.TopPointsSince(ctx, scopeID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking points for scope %s: %w", scopeID, err)
	}
	return rows, nil
}

// Leaderboard renders the ranked window as chat-facing text.
func (s *Service) Leaderboard(ctx context.Context, scopeID string, w Window) (string, error) {
	rows, err := s.TopPoints(ctx, scopeID, w, 0)
	if err != nil {
		return "", err
	}
	return RenderLeaderboard(w, rows), nil
}
