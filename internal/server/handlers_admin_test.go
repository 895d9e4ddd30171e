package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maju6406/shundor-bot/internal/domain"
	"github.com/maju6406/shundor-bot/internal/points"
	"github.com/maju6406/shundor-bot/internal/trigger"
)

func adminRequest(srv *Server, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func sampleTriggers() []trigger.Trigger {
	return []trigger.Trigger{
		{
			ID:              "example.hear.rimshot",
			Kind:            trigger.KindHear,
			Description:     "plays a rimshot",
			CooldownSeconds: 10,
			Matcher:         trigger.MustPatterns(`(?i)\brimshot\b`),
			Run:             func(context.Context, *trigger.Invocation, trigger.Match) error { return nil },
		},
		{
			ID:          "example.hear.hodor",
			Kind:        trigger.KindHear,
			Description: "hodor",
			Matcher:     trigger.MustPatterns(`(?i)\bhodor\b`),
			Run:         func(context.Context, *trigger.Invocation, trigger.Match) error { return nil },
		},
	}
}

func TestAdminAuth(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"wrong token", "not-the-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := adminRequest(srv, http.MethodGet, "/api/scopes/scope-1/triggers", "", tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestHandleListTriggers(t *testing.T) {
	overrides := newMemOverrideStore()
	require.NoError(t, overrides.SetOverride(context.Background(), "scope-1", "example.hear.rimshot", false))

	srv := newTestServer(t,
		withDispatcher(&mockDispatcher{triggers: sampleTriggers()}),
		withOverrides(overrides),
	)

	rec := adminRequest(srv, http.MethodGet, "/api/scopes/scope-1/triggers", "", testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Triggers []triggerInfo `json:"triggers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Triggers, 2)

	assert.Equal(t, "example.hear.rimshot", resp.Triggers[0].ID)
	assert.False(t, resp.Triggers[0].Enabled)
	assert.Equal(t, 10, resp.Triggers[0].CooldownSeconds)

	assert.Equal(t, "example.hear.hodor", resp.Triggers[1].ID)
	assert.True(t, resp.Triggers[1].Enabled)
}

func TestHandleSetOverride(t *testing.T) {
	overrides := newMemOverrideStore()
	srv := newTestServer(t,
		withDispatcher(&mockDispatcher{triggers: sampleTriggers()}),
		withOverrides(overrides),
	)

	rec := adminRequest(srv, http.MethodPut, "/api/scopes/scope-1/triggers/example.hear.hodor",
		`{"enabled": false}`, testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	enabled, found, err := overrides.GetOverride(context.Background(), "scope-1", "example.hear.hodor")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, enabled)
}

func TestHandleSetOverride_UnknownTrigger(t *testing.T) {
	srv := newTestServer(t,
		withDispatcher(&mockDispatcher{triggers: sampleTriggers()}),
	)

	rec := adminRequest(srv, http.MethodPut, "/api/scopes/scope-1/triggers/no.such.trigger",
		`{"enabled": false}`, testAdminToken)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"not_found"`)
}

func TestHandleSetOverride_MissingEnabled(t *testing.T) {
	srv := newTestServer(t,
		withDispatcher(&mockDispatcher{triggers: sampleTriggers()}),
	)

	rec := adminRequest(srv, http.MethodPut, "/api/scopes/scope-1/triggers/example.hear.hodor",
		`{}`, testAdminToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLeaderboard(t *testing.T) {
	pts := &mockPointsService{
		topFn: func(_ context.Context, scopeID string, w points.Window, limit int) ([]domain.LeaderboardRow, error) {
			assert.Equal(t, "scope-1", scopeID)
			assert.Equal(t, points.WindowWeek, w)
			assert.Equal(t, 5, limit)
			return []domain.LeaderboardRow{
				{UserID: "user-1", Points: 42},
				{UserID: "user-2", Points: 7},
			}, nil
		},
	}
	srv := newTestServer(t, withPoints(pts))

	rec := adminRequest(srv, http.MethodGet, "/api/scopes/scope-1/leaderboard?window=week&limit=5", "", testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), `"window":"week"`)
	assert.Contains(t, rec.Body.String(), "Top Points This Week")
	assert.Contains(t, rec.Body.String(), "1. <@user-1> — 42")
}

func TestHandleLeaderboard_DefaultsToAllTime(t *testing.T) {
	pts := &mockPointsService{
		topFn: func(_ context.Context, _ string, w points.Window, limit int) ([]domain.LeaderboardRow, error) {
			assert.Equal(t, points.WindowAll, w)
			assert.Equal(t, 0, limit)
			return nil, nil
		},
	}
	srv := newTestServer(t, withPoints(pts))

	rec := adminRequest(srv, http.MethodGet, "/api/scopes/scope-1/leaderboard", "", testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No points yet.")
}

func TestHandleLeaderboard_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{"bad window", "/api/scopes/scope-1/leaderboard?window=decade"},
		{"bad limit", "/api/scopes/scope-1/leaderboard?limit=zero"},
		{"negative limit", "/api/scopes/scope-1/leaderboard?limit=-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := adminRequest(srv, http.MethodGet, tt.path, "", testAdminToken)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleAward(t *testing.T) {
	pts := &mockPointsService{
		awardFn: func(_ context.Context, scopeID, giverID string, receiver domain.Member, amount int) (int64, error) {
			assert.Equal(t, "scope-1", scopeID)
			assert.Equal(t, "user-1", giverID)
			assert.Equal(t, domain.Member{ID: "user-2"}, receiver)
			assert.Equal(t, 1, amount)
			return 25, nil
		},
	}
	srv := newTestServer(t, withPoints(pts))

	rec := adminRequest(srv, http.MethodPost, "/api/scopes/scope-1/awards",
		`{"giver_id": "user-1", "receiver_id": "user-2"}`, testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp awardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-2", resp.ReceiverID)
	assert.Equal(t, int64(25), resp.Total)
	assert.Contains(t, resp.Message, "Awww yiss, <@user-2> now has 25 points!")
	assert.Contains(t, resp.Message, "Twenty-five points")
	// A successful award arms the giver cooldown.
	assert.Equal(t, []string{"scope-1/user-1"}, pts.armed)
}

func TestHandleAward_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing giver", `{"receiver_id": "user-2"}`},
		{"missing receiver", `{"giver_id": "user-1"}`},
		{"oversized reason", `{"giver_id": "user-1", "receiver_id": "user-2", "reason": "` + strings.Repeat("x", 201) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rec := adminRequest(srv, http.MethodPost, "/api/scopes/scope-1/awards", tt.body, testAdminToken)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleAward_SelfAward(t *testing.T) {
	pts := &mockPointsService{
		awardFn: func(_ context.Context, _, _ string, _ domain.Member, _ int) (int64, error) {
			return 0, domain.ErrSelfAward
		},
	}
	srv := newTestServer(t, withPoints(pts))

	rec := adminRequest(srv, http.MethodPost, "/api/scopes/scope-1/awards",
		`{"giver_id": "user-1", "receiver_id": "user-1"}`, testAdminToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "yourself")
}

func TestHandleAward_BotReceiver(t *testing.T) {
	pts := &mockPointsService{
		awardFn: func(_ context.Context, _, _ string, receiver domain.Member, _ int) (int64, error) {
			assert.True(t, receiver.IsBot)
			return 0, domain.ErrBotRecipient
		},
	}
	srv := newTestServer(t, withPoints(pts))

	rec := adminRequest(srv, http.MethodPost, "/api/scopes/scope-1/awards",
		`{"giver_id": "user-1", "receiver_id": "bot-1", "receiver_is_bot": true}`, testAdminToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bots")
}

func TestHandleAward_GiverOnCooldown(t *testing.T) {
	pts := &mockPointsService{
		cooldownFn: func(_ context.Context, _, _ string) (time.Duration, error) {
			return 12 * time.Second, nil
		},
	}
	srv := newTestServer(t, withPoints(pts))

	rec := adminRequest(srv, http.MethodPost, "/api/scopes/scope-1/awards",
		`{"giver_id": "user-1", "receiver_id": "user-2"}`, testAdminToken)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"retry_after_seconds":12`)
}
