package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/maju6406/shundor-bot/internal/domain"
)

// KVRepo is the namespaced key-value store backed by the kv table.
type KVRepo struct {
	q Querier
}

var _ domain.KVStore = (*KVRepo)(nil)

func NewKVRepo(q Querier) *KVRepo {
	return &KVRepo{q: q}
}

func (r *KVRepo) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	sql, args, err := psql.
		Select("value").
		From("kv").
		Where(squirrel.Eq{"namespace": namespace}).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building kv get query: %w", err)
	}

	var value string
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKVNotFound
		}
		return nil, fmt.Errorf("reading kv %s/%s: %w", namespace, key, err)
	}
	return []byte(value), nil
}

func (r *KVRepo) Set(ctx context.Context, namespace, key string, value []byte) error {
	sql, args, err := psql.
		Insert("kv").
		Columns("namespace", "key", "value").
		Values(namespace, key, string(value)).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("building kv set query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("writing kv %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *KVRepo) Delete(ctx context.Context, namespace, key string) error {
	sql, args, err := psql.
		Delete("kv").
		Where(squirrel.Eq{"namespace": namespace}).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building kv delete query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("deleting kv %s/%s: %w", namespace, key, err)
	}
	return nil
}
