package trigger

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CooldownKey identifies one cooldown bucket: a rule fired by an actor in a
// scope. Direct messages use domain.DirectScope as the scope component.
type CooldownKey struct {
	Scope     string
	Actor     string
	TriggerID string
}

// CooldownStore tracks a not-before instant per key. It is purely in-memory
// and process-local: a restart resets all cooldowns, which is acceptable
// because cooldowns are a UX throttle, not a durable guarantee.
//
// The store is safe for concurrent use; checks and arms are O(1) and never
// perform I/O under the lock.
type CooldownStore struct {
	mu    sync.Mutex
	clock clockwork.Clock
	until map[CooldownKey]time.Time
}

// NewCooldownStore creates an empty cooldown store using the given clock.
func NewCooldownStore(clock clockwork.Clock) *CooldownStore {
	return &CooldownStore{
		clock: clock,
		until: make(map[CooldownKey]time.Time),
	}
}

// IsBlocked reports whether the key is still cooling down. Expired entries
// are deleted opportunistically so the map stays bounded by active keys.
func (s *CooldownStore) IsBlocked(key CooldownKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.until[key]
	if !ok {
		return false
	}
	// A zero-second arm sets until=now, which must not block.
	if !until.After(s.clock.Now()) {
		delete(s.until, key)
		return false
	}
	return true
}

// Arm sets the key's not-before instant to now plus the given number of
// seconds. Arming with zero seconds is a valid no-op re-arm.
func (s *CooldownStore) Arm(key CooldownKey, seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.until[key] = s.clock.Now().Add(time.Duration(seconds) * time.Second)
}
