package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maju6406/shundor-bot/internal/domain"
)

// OverrideRepo stores per-scope trigger enable overrides in the kv table.
// The key layout matches the rest of the scope-scoped settings: namespace
// "guild:<scope>" and key "trigger:<id>:enabled" holding a JSON boolean.
type OverrideRepo struct {
	kv domain.KVStore
}

var _ domain.OverrideStore = (*OverrideRepo)(nil)

func NewOverrideRepo(kv domain.KVStore) *OverrideRepo {
	return &OverrideRepo{kv: kv}
}

func overrideNamespace(scopeID string) string {
	return fmt.Sprintf("guild:%s", scopeID)
}

func overrideKey(triggerID string) string {
	return fmt.Sprintf("trigger:%s:enabled", triggerID)
}

func (r *OverrideRepo) GetOverride(ctx context.Context, scopeID, triggerID string) (enabled, found bool, err error) {
	raw, err := r.kv.Get(ctx, overrideNamespace(scopeID), overrideKey(triggerID))
	if errors.Is(err, domain.ErrKVNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	if err := json.Unmarshal(raw, &enabled); err != nil {
		return false, false, fmt.Errorf("decoding override for %s/%s: %w", scopeID, triggerID, err)
	}
	return enabled, true, nil
}

func (r *OverrideRepo) SetOverride(ctx context.Context, scopeID, triggerID string, enabled bool) error {
	raw, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("encoding override: %w", err)
	}
	return r.kv.Set(ctx, overrideNamespace(scopeID), overrideKey(triggerID), raw)
}
