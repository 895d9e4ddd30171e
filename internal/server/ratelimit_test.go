package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScopeRateLimiter_BurstThenBlocks(t *testing.T) {
	limiter := NewScopeRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("scope-1"), "event %d should fit in the burst", i)
	}
	assert.False(t, limiter.Allow("scope-1"))
}

func TestScopeRateLimiter_ScopesAreIndependent(t *testing.T) {
	limiter := NewScopeRateLimiter(1, 1)

	assert.True(t, limiter.Allow("scope-1"))
	assert.False(t, limiter.Allow("scope-1"))

	assert.True(t, limiter.Allow("scope-2"))
}

func TestScopeRateLimiter_CleanupDropsIdleScopes(t *testing.T) {
	limiter := NewScopeRateLimiter(1, 1)

	assert.True(t, limiter.Allow("scope-1"))
	assert.Len(t, limiter.limiters, 1)

	limiter.mu.Lock()
	limiter.limiters["scope-1"].lastSeen = time.Now().Add(-11 * time.Minute)
	limiter.cleanup()
	limiter.mu.Unlock()

	assert.Empty(t, limiter.limiters)
}
