package trigger

import "strings"

const replyMaxRunes = 1800

// zero-width space keeps the literal text readable while defusing the ping
const zwsp = "​"

// StripMassMentions defuses @everyone and @here in reply text.
func StripMassMentions(input string) string {
	input = strings.ReplaceAll(input, "@everyone", "@"+zwsp+"everyone")
	return strings.ReplaceAll(input, "@here", "@"+zwsp+"here")
}

// Truncate caps input at max runes, ending with an ellipsis when cut.
func Truncate(input string, max int) string {
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}
	if max < 1 {
		return ""
	}
	return string(runes[:max-1]) + "…"
}

// SanitizeReplyText applies the outbound reply rules: mass mentions defused,
// length capped.
func SanitizeReplyText(input string) string {
	return Truncate(StripMassMentions(input), replyMaxRunes)
}
