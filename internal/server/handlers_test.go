package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/maju6406/shundor-bot/internal/config"
	"github.com/maju6406/shundor-bot/internal/domain"
	"github.com/maju6406/shundor-bot/internal/points"
	"github.com/maju6406/shundor-bot/internal/trigger"
)

const testAdminToken = "test-admin-token"

// --- Mock implementations ---

type mockDispatcher struct {
	triggers   []trigger.Trigger
	dispatchFn func(ctx context.Context, ev domain.Event, rsp trigger.Replier)
	dispatched []domain.Event
}

func (m *mockDispatcher) Dispatch(ctx context.Context, ev domain.Event, rsp trigger.Replier) {
	m.dispatched = append(m.dispatched, ev)
	if m.dispatchFn != nil {
		m.dispatchFn(ctx, ev, rsp)
	}
}

func (m *mockDispatcher) Triggers() []trigger.Trigger {
	return m.triggers
}

func (m *mockDispatcher) HasTrigger(id string) bool {
	for _, t := range m.triggers {
		if t.ID == id {
			return true
		}
	}
	return false
}

type mockPointsService struct {
	cooldownFn func(ctx context.Context, scopeID, giverID string) (time.Duration, error)
	awardFn    func(ctx context.Context, scopeID, giverID string, receiver domain.Member, amount int) (int64, error)
	topFn      func(ctx context.Context, scopeID string, w points.Window, limit int) ([]domain.LeaderboardRow, error)
	armed      []string
}

func (m *mockPointsService) GiverCooldownRemaining(ctx context.Context, scopeID, giverID string) (time.Duration, error) {
	if m.cooldownFn != nil {
		return m.cooldownFn(ctx, scopeID, giverID)
	}
	return 0, nil
}

func (m *mockPointsService) ArmGiverCooldown(_ context.Context, scopeID, giverID string) error {
	m.armed = append(m.armed, scopeID+"/"+giverID)
	return nil
}

func (m *mockPointsService) Award(ctx context.Context, scopeID, giverID string, receiver domain.Member, amount int) (int64, error) {
	if m.awardFn != nil {
		return m.awardFn(ctx, scopeID, giverID, receiver, amount)
	}
	return 0, fmt.Errorf("not implemented")
}

func (m *mockPointsService) TopPoints(ctx context.Context, scopeID string, w points.Window, limit int) ([]domain.LeaderboardRow, error) {
	if m.topFn != nil {
		return m.topFn(ctx, scopeID, w, limit)
	}
	return nil, nil
}

type memOverrideStore struct {
	values map[string]bool
	getErr error
	setErr error
}

func newMemOverrideStore() *memOverrideStore {
	return &memOverrideStore{values: make(map[string]bool)}
}

func (m *memOverrideStore) key(scopeID, triggerID string) string {
	return scopeID + "/" + triggerID
}

func (m *memOverrideStore) GetOverride(_ context.Context, scopeID, triggerID string) (bool, bool, error) {
	if m.getErr != nil {
		return false, false, m.getErr
	}
	enabled, found := m.values[m.key(scopeID, triggerID)]
	return enabled, found, nil
}

func (m *memOverrideStore) SetOverride(_ context.Context, scopeID, triggerID string, enabled bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[m.key(scopeID, triggerID)] = enabled
	return nil
}

// mockRedisClient provides a minimal mock for health check testing
type mockRedisClient struct {
	pingErr error
}

func (m *mockRedisClient) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	if m.pingErr != nil {
		cmd.SetErr(m.pingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

// mockPgxPool provides a minimal mock for PostgreSQL health checks
type mockPgxPool struct {
	pingErr error
}

func (m *mockPgxPool) Ping(ctx context.Context) error {
	return m.pingErr
}

// --- Test helpers ---

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:       "8080",
		BotUserID:  "111111111",
		AdminToken: testAdminToken,
	}

	srv := NewServer(cfg,
		&mockDispatcher{},
		&mockPointsService{},
		newMemOverrideStore(),
		&mockRedisClient{},
		&mockPgxPool{},
	)

	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

func withDispatcher(d dispatcher) func(*Server) {
	return func(s *Server) { s.dispatcher = d }
}

func withPoints(p pointsService) func(*Server) {
	return func(s *Server) { s.points = p }
}

func withOverrides(o domain.OverrideStore) func(*Server) {
	return func(s *Server) { s.overrides = o }
}

func withRedisHealthCheck(r redisHealthChecker) func(*Server) {
	return func(s *Server) { s.redisPing = r }
}

func withPostgresHealthCheck(p postgresHealthChecker) func(*Server) {
	return func(s *Server) { s.dbPing = p }
}
