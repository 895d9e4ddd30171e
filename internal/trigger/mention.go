package trigger

import (
	"regexp"
	"strings"
)

// mentionPattern builds the pattern recognizing a leading bot mention, in
// either the plain (<@id>) or nickname (<@!id>) form, with an optional
// trailing comma or colon.
func mentionPattern(botID string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*<@!?` + regexp.QuoteMeta(botID) + `>[,:]?\s*`)
}

// stripLeadingMention removes a leading bot mention from content and returns
// the trimmed residual text. ok is false when content does not start with a
// mention of the bot, or when nothing but the mention remains.
func stripLeadingMention(re *regexp.Regexp, content string) (residual string, ok bool) {
	loc := re.FindStringIndex(content)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	residual = strings.TrimSpace(content[loc[1]:])
	if residual == "" {
		return "", false
	}
	return residual, true
}
