package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maju6406/shundor-bot/internal/domain"
	apperrors "github.com/maju6406/shundor-bot/internal/errors"
	"github.com/maju6406/shundor-bot/internal/points"
)

const maxAwardReasonLength = 200

type triggerInfo struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Description     string `json:"description"`
	CooldownSeconds int    `json:"cooldown_seconds"`
	AllowMultiple   bool   `json:"allow_multiple"`
	Enabled         bool   `json:"enabled"`
}

// handleListTriggers lists the registered triggers with their effective
// enabled state for one scope.
func (s *Server) handleListTriggers(c echo.Context) error {
	scopeID := c.Param("scope")
	ctx := c.Request().Context()

	registered := s.dispatcher.Triggers()
	out := make([]triggerInfo, 0, len(registered))
	for _, t := range registered {
		enabled := true
		if override, found, err := s.overrides.GetOverride(ctx, scopeID, t.ID); err != nil {
			return apperrors.UnavailableError("override lookup failed", err).
				WithContext("trigger_id", t.ID)
		} else if found {
			enabled = override
		}

		out = append(out, triggerInfo{
			ID:              t.ID,
			Kind:            string(t.Kind),
			Description:     t.Description,
			CooldownSeconds: t.CooldownSeconds,
			AllowMultiple:   t.AllowMultiple,
			Enabled:         enabled,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"triggers": out})
}

type setOverrideRequest struct {
	Enabled *bool `json:"enabled"`
}

func (s *Server) handleSetOverride(c echo.Context) error {
	scopeID := c.Param("scope")
	triggerID := c.Param("id")

	if !s.dispatcher.HasTrigger(triggerID) {
		return apperrors.NotFoundError("unknown trigger id").
			WithContext("trigger_id", triggerID)
	}

	var req setOverrideRequest
	if err := c.Bind(&req); err != nil || req.Enabled == nil {
		return apperrors.ValidationError("enabled (boolean) is required")
	}

	if err := s.overrides.SetOverride(c.Request().Context(), scopeID, triggerID, *req.Enabled); err != nil {
		return apperrors.UnavailableError("failed to store override", err).
			WithContext("trigger_id", triggerID)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"trigger_id": triggerID,
		"scope_id":   scopeID,
		"enabled":    *req.Enabled,
	})
}

func (s *Server) handleLeaderboard(c echo.Context) error {
	scopeID := c.Param("scope")

	windowName := c.QueryParam("window")
	if windowName == "" {
		windowName = string(points.WindowAll)
	}
	window, err := points.ParseWindow(windowName)
	if err != nil {
		return apperrors.ValidationError("window must be one of all, week, month, year")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return apperrors.ValidationError("limit must be a positive integer")
		}
	}

	rows, err := s.points.TopPoints(c.Request().Context(), scopeID, window, limit)
	if err != nil {
		return apperrors.UnavailableError("leaderboard query failed", err).
			WithContext("scope_id", scopeID)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"window":  window,
		"rows":    rows,
		"message": points.RenderLeaderboard(window, rows),
	})
}

type awardRequest struct {
	GiverID       string `json:"giver_id"`
	ReceiverID    string `json:"receiver_id"`
	ReceiverIsBot bool   `json:"receiver_is_bot"`
	Amount        int    `json:"amount"`
	Reason        string `json:"reason"`
}

type awardResponse struct {
	ReceiverID string `json:"receiver_id"`
	Total      int64  `json:"total"`
	Message    string `json:"message"`
}

func (s *Server) handleAward(c echo.Context) error {
	scopeID := c.Param("scope")
	ctx := c.Request().Context()

	var req awardRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid award payload")
	}
	if req.GiverID == "" || req.ReceiverID == "" {
		return apperrors.ValidationError("giver_id and receiver_id are required")
	}
	if len(req.Reason) > maxAwardReasonLength {
		return apperrors.ValidationError("reason is too long")
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	remaining, err := s.points.GiverCooldownRemaining(ctx, scopeID, req.GiverID)
	if err != nil {
		return apperrors.UnavailableError("cooldown lookup failed", err).
			WithContext("giver_id", req.GiverID)
	}
	if remaining > 0 {
		retryAfter := int((remaining + time.Second - 1) / time.Second)
		return apperrors.CooldownError("giver is on cooldown").
			WithContext("retry_after_seconds", retryAfter)
	}

	receiver := domain.Member{ID: req.ReceiverID, IsBot: req.ReceiverIsBot}
	total, err := s.points.Award(ctx, scopeID, req.GiverID, receiver, req.Amount)
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSelfAward),
		errors.Is(err, domain.ErrBotRecipient):
		return apperrors.ValidationError(err.Error())
	case err != nil:
		return apperrors.UnavailableError("award failed", err).
			WithContext("receiver_id", req.ReceiverID)
	}

	if err := s.points.ArmGiverCooldown(ctx, scopeID, req.GiverID); err != nil {
		// The grant landed; a lost cooldown only lets the giver award
		// again sooner.
		slog.WarnContext(ctx, "Failed to arm giver cooldown",
			"scope_id", scopeID, "giver_id", req.GiverID, "error", err)
	}

	return c.JSON(http.StatusOK, awardResponse{
		ReceiverID: req.ReceiverID,
		Total:      total,
		Message:    points.RenderAward(req.ReceiverID, total, req.Reason),
	})
}
