package points

import (
	"fmt"
	"strings"

	"github.com/maju6406/shundor-bot/internal/domain"
)

func windowTitle(w Window) string {
	switch w {
	case WindowWeek:
		return "Top Points This Week"
	case WindowMonth:
		return "Top Points This Month"
	case WindowYear:
		return "Top Points This Year"
	default:
		return "Top Points (All Time)"
	}
}

// RenderLeaderboard formats ranked rows as the chat-facing leaderboard text.
func RenderLeaderboard(w Window, rows []domain.LeaderboardRow) string {
	lines := []string{fmt.Sprintf("**%s**", windowTitle(w))}

	if len(rows) == 0 {
		lines = append(lines, "No points yet.")
		return strings.Join(lines, "\n")
	}

	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("%d. <@%s> — %d", i+1, row.UserID, row.Points))
	}
	return strings.Join(lines, "\n")
}

// RenderAward formats the reply for a single award: the headline, an
// optional milestone line, and a celebration gif.
func RenderAward(receiverID string, total int64, reason string) string {
	var lines []string
	if reason != "" {
		lines = append(lines, fmt.Sprintf("Awww yiss, <@%s> now has %d points for %q!", receiverID, total, reason))
	} else {
		lines = append(lines, fmt.Sprintf("Awww yiss, <@%s> now has %d points!", receiverID, total))
	}
	if special, ok := MilestoneMessage(total); ok {
		lines = append(lines, special)
	}
	if gif := PickAwardGif(); gif != "" {
		lines = append(lines, gif)
	}
	return strings.Join(lines, "\n")
}
