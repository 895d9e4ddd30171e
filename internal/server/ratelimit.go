package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	eventRatePerSecond = 20.0
	eventRateBurst     = 40
)

// ScopeRateLimiter limits event intake per scope so one noisy channel
// cannot starve the rest. Uses token bucket via golang.org/x/time/rate.
type ScopeRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewScopeRateLimiter(eventsPerSecond float64, burst int) *ScopeRateLimiter {
	return &ScopeRateLimiter{
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(eventsPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(5 * time.Minute),
	}
}

// Allow reports whether an event for the given scope may proceed.
func (l *ScopeRateLimiter) Allow(scopeID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.cleanupAt) {
		l.cleanup()
		l.cleanupAt = time.Now().Add(5 * time.Minute)
	}

	entry, exists := l.limiters[scopeID]
	if !exists {
		entry = &rateLimiterEntry{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.limiters[scopeID] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters that haven't been used in 10 minutes.
// Must be called with mu held.
func (l *ScopeRateLimiter) cleanup() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for scopeID, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, scopeID)
		}
	}
}

