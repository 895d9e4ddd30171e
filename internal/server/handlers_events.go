package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/maju6406/shundor-bot/internal/domain"
	apperrors "github.com/maju6406/shundor-bot/internal/errors"
	"github.com/maju6406/shundor-bot/internal/logging"
)

type memberPayload struct {
	ID    string `json:"id"`
	IsBot bool   `json:"is_bot"`
}

type eventRequest struct {
	MessageID      string          `json:"message_id"`
	Text           string          `json:"text"`
	AuthorID       string          `json:"author_id"`
	AuthorIsBot    bool            `json:"author_is_bot"`
	ScopeID        string          `json:"scope_id"`
	MentionsBot    bool            `json:"mentions_bot"`
	ChannelMembers []memberPayload `json:"channel_members"`
}

type eventResponse struct {
	Replies []string `json:"replies"`
}

// replyCollector gathers the reply texts a dispatch produced, so the
// gateway can deliver them. It is safe for concurrent use as a trigger
// action may reply from multiple goroutines.
type replyCollector struct {
	mu      sync.Mutex
	replies []string
}

func (r *replyCollector) Reply(_ context.Context, _ domain.Event, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, text)
	return nil
}

// handleEvent runs one inbound chat message through the trigger engine and
// returns the replies to deliver. Always 200 with a (possibly empty) reply
// list; trigger failures are contained inside the dispatcher.
func (s *Server) handleEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid event payload")
	}
	if req.MessageID == "" {
		return apperrors.ValidationError("message_id is required")
	}
	if req.AuthorID == "" {
		return apperrors.ValidationError("author_id is required")
	}

	if !s.limiter.Allow(req.ScopeID) {
		return apperrors.CooldownError("event rate limit exceeded").
			WithContext("scope_id", req.ScopeID)
	}

	members := make([]domain.Member, 0, len(req.ChannelMembers))
	for _, m := range req.ChannelMembers {
		members = append(members, domain.Member{ID: m.ID, IsBot: m.IsBot})
	}

	ev := domain.Event{
		MessageID:      req.MessageID,
		Text:           req.Text,
		AuthorID:       req.AuthorID,
		AuthorIsBot:    req.AuthorIsBot,
		ScopeID:        req.ScopeID,
		MentionsBot:    req.MentionsBot,
		ChannelMembers: members,
	}

	ctx := logging.WithCorrelationID(c.Request().Context(), logging.NewCorrelationID())

	// Start non-nil so a no-op dispatch serializes as [], not null.
	collector := &replyCollector{replies: []string{}}
	s.dispatcher.Dispatch(ctx, ev, collector)

	return c.JSON(http.StatusOK, eventResponse{Replies: collector.replies})
}
