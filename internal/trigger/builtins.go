package trigger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maju6406/shundor-bot/internal/domain"
	"github.com/maju6406/shundor-bot/internal/points"
)

// PointsGranter is the slice of the points service the builtin triggers
// need: the giver-side cooldown and the bulk award path.
type PointsGranter interface {
	GiverCooldownRemaining(ctx context.Context, scopeID, giverID string) (time.Duration, error)
	ArmGiverCooldown(ctx context.Context, scopeID, giverID string) error
	AwardBulk(ctx context.Context, scopeID, giverID string, receivers []domain.Member, amount int) ([]domain.AwardResult, error)
}

// Builtins returns the builtin trigger set in evaluation order. The
// points-bang trigger is first so point grants are never shadowed by a
// later pattern.
func Builtins(granter PointsGranter) []Trigger {
	triggers := []Trigger{
		{
			ID:          "hubot.hear.points-bang",
			Kind:        KindHear,
			Description: `Saying "points!" gives +1 to other real users in the channel.`,
			Matcher:     MustPatterns(`(?i)^\s*points!\s*$`),
			Run: func(ctx context.Context, inv *Invocation, _ Match) error {
				return runPointsBang(ctx, inv, granter)
			},
		},
		{
			ID:              "example.hear.rimshot",
			Kind:            KindHear,
			Description:     `Replies when someone says "rimshot".`,
			CooldownSeconds: 10,
			Matcher:         MustPatterns(`(?i)\brimshot\b`),
			Run: func(ctx context.Context, inv *Invocation, _ Match) error {
				return inv.SafeReply(ctx, "🥁 *ba-dum tss*")
			},
		},
		{
			ID:              "example.respond.echo",
			Kind:            KindRespond,
			Description:     `When mentioned, echo back text after "echo".`,
			CooldownSeconds: 3,
			Matcher:         MustPatterns(`(?i)^echo\s+(.+)$`),
			Run: func(ctx context.Context, inv *Invocation, m Match) error {
				return inv.SafeReply(ctx, strings.TrimSpace(m.Groups[0]))
			},
		},
		reactionTrigger("hubot.hear.530", `Replies with a 530 gif when someone says "530".`, `(?i)\b530\b`, fiveThirtyGifs),
		reactionTrigger("hubot.hear.clutches-pearls", "Clutches pearls gif.", `(?i)clutches pearls`, clutchesGifs),
		{
			ID:          "hubot.hear.hodor",
			Kind:        KindHear,
			Description: "Replies HODOR!",
			Matcher:     MustPatterns(`(?i)\bhodor\b`),
			Run: func(ctx context.Context, inv *Invocation, _ Match) error {
				return inv.SafeReply(ctx, "HODOR!")
			},
		},
		reactionTrigger("hubot.hear.hot-damn", "Hot damn gif.", `(?i)hot damn`, hotDamnGifs),
		reactionTrigger("hubot.hear.kanyeclap", "Kanye clap gif.", `(?i)\bkanyeclap\b`, kanyeGifs),
		reactionTrigger("hubot.hear.mic-drop", "Random mic drop gif.", `(?i)mic drop`, micDropGifs),
		reactionTrigger("hubot.hear.snap", "Snap gif.", `(?i)\bsnap\b`, snapGifs),
		reactionTrigger("hubot.hear.so-cute", "So cute gif.", `(?i)so cute`, soCuteGifs),
		reactionTrigger("hubot.hear.technology", "Technology gif.", `(?i)\btechnology\b`, technologyGifs),
		reactionTrigger("hubot.hear.twirl", "Twirl gif.", `(?i)\btwirl\b`, twirlGifs),
	}
	return triggers
}

func reactionTrigger(id, description, pattern string, pool []string) Trigger {
	return Trigger{
		ID:          id,
		Kind:        KindHear,
		Description: description,
		Matcher:     MustPatterns(pattern),
		Run: func(ctx context.Context, inv *Invocation, _ Match) error {
			return inv.SafeReply(ctx, pickRandom(pool))
		},
	}
}

func runPointsBang(ctx context.Context, inv *Invocation, granter PointsGranter) error {
	ev := inv.Event
	if ev.ScopeID == "" {
		return nil
	}

	remaining, err := granter.GiverCooldownRemaining(ctx, ev.ScopeID, ev.AuthorID)
	if err != nil {
		return fmt.Errorf("checking giver cooldown: %w", err)
	}
	if remaining > 0 {
		secs := int((remaining + time.Second - 1) / time.Second)
		return inv.SafeReply(ctx, fmt.Sprintf("Points cooldown active (%ds remaining).", secs))
	}

	awarded, err := granter.AwardBulk(ctx, ev.ScopeID, ev.AuthorID, ev.ChannelMembers, 1)
	if err != nil {
		return fmt.Errorf("awarding bulk points: %w", err)
	}
	if len(awarded) == 0 {
		return inv.SafeReply(ctx, "No other real users found in this channel right now.")
	}
	if err := granter.ArmGiverCooldown(ctx, ev.ScopeID, ev.AuthorID); err != nil {
		// The grants landed; a lost cooldown only lets the giver award
		// again sooner.
		inv.Log.WarnContext(ctx, "Failed to arm giver cooldown", "error", err)
	}

	mentions := make([]string, 0, len(awarded))
	for _, row := range awarded {
		mentions = append(mentions, fmt.Sprintf("<@%s>", row.ReceiverID))
		inv.Log.InfoContext(ctx, "Points awarded",
			"receiver_id", row.ReceiverID,
			"amount", 1,
			"total", row.Total,
			"source", "points-bang",
			"message_id", ev.MessageID,
		)
	}

	lines := []string{fmt.Sprintf("+1 point to %d users: %s", len(awarded), strings.Join(mentions, " "))}
	for _, row := range awarded {
		if special, ok := points.MilestoneMessage(row.Total); ok {
			lines = append(lines, fmt.Sprintf("<@%s> %s", row.ReceiverID, special))
		}
	}
	if gif := points.PickAwardGif(); gif != "" {
		lines = append(lines, gif)
	}
	return inv.SafeReply(ctx, strings.Join(lines, "\n"))
}
