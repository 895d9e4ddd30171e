package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/maju6406/shundor-bot/internal/domain"
)

// LedgerRepo is the append-only points ledger backed by the points_ledger
// table. Totals are computed by SUM at read time, never cached.
type LedgerRepo struct {
	q Querier
}

var _ domain.LedgerStore = (*LedgerRepo)(nil)

func NewLedgerRepo(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

func (r *LedgerRepo) AppendPointEvent(ctx context.Context, event domain.PointEvent) error {
	sql, args, err := psql.
		Insert("points_ledger").
		Columns("id", "scope_id", "giver_id", "receiver_id", "points", "created_at").
		Values(event.ID, event.ScopeID, event.GiverID, event.ReceiverID, event.Points, event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building ledger insert: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("appending point event %s: %w", event.ID, err)
	}
	return nil
}

func (r *LedgerRepo) SumPointsForUser(ctx context.Context, scopeID, receiverID string) (int64, error) {
	sql, args, err := psql.
		Select("COALESCE(SUM(points), 0)").
		From("points_ledger").
		Where(squirrel.Eq{"scope_id": scopeID}).
		Where(squirrel.Eq{"receiver_id": receiverID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building ledger sum query: %w", err)
	}

	var total int64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing points for %s in %s: %w", receiverID, scopeID, err)
	}
	return total, nil
}

func (r *LedgerRepo) TopPointsSince(ctx context.Context, scopeID string, since *time.Time, limit int) ([]domain.LeaderboardRow, error) {
	builder := psql.
		Select("receiver_id", "SUM(points)::BIGINT AS points").
		From("points_ledger").
		Where(squirrel.Eq{"scope_id": scopeID})
	if since != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *since})
	}
	sql, args, err := builder.
		GroupBy("receiver_id").
		OrderBy("points DESC", "receiver_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building leaderboard query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ranking points in %s: %w", scopeID, err)
	}
	defer rows.Close()

	var result []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Points); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leaderboard rows: %w", err)
	}
	return result, nil
}
