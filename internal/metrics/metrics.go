// Package metrics defines the Prometheus metrics exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Trigger dispatch metrics
var (
	// TriggersFired tracks fired triggers by trigger id
	TriggersFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggers_fired_total",
			Help: "Total triggers fired by trigger id",
		},
		[]string{"trigger_id"},
	)

	// TriggerActionFailures tracks trigger actions that returned an error or panicked
	TriggerActionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trigger_action_failures_total",
			Help: "Total trigger action failures by trigger id",
		},
		[]string{"trigger_id"},
	)

	// TriggerCooldownBlocks tracks rule evaluations skipped by an active cooldown
	TriggerCooldownBlocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trigger_cooldown_blocks_total",
			Help: "Total trigger evaluations blocked by an active cooldown",
		},
	)

	// DispatchDuration tracks end-to-end dispatch latency per event
	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Event dispatch duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)

// Points ledger metrics
var (
	// PointsAwarded tracks total points appended to the ledger
	PointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_awarded_total",
			Help: "Total points appended to the ledger",
		},
	)

	// PointsAwardFailures tracks rejected or failed awards by reason
	PointsAwardFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_award_failures_total",
			Help: "Total rejected or failed point awards by reason",
		},
		[]string{"reason"},
	)
)

// Database metrics
var (
	// DBQueryDuration tracks query latency by simplified query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks failed queries by simplified query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total failed database queries by query name",
		},
		[]string{"query"},
	)
)

// Override cache metrics
var (
	// OverrideCacheHits tracks override lookups served from the redis cache
	OverrideCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "override_cache_hits_total",
			Help: "Total trigger override lookups served from cache",
		},
	)

	// OverrideCacheMisses tracks override lookups that fell through to the store
	OverrideCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "override_cache_misses_total",
			Help: "Total trigger override lookups that fell through to the store",
		},
	)
)

// Redis operation metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
