package trigger

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/maju6406/shundor-bot/internal/domain"
)

// Kind distinguishes ambient triggers from mention-scoped ones.
type Kind string

const (
	// KindHear fires on any qualifying message.
	KindHear Kind = "hear"
	// KindRespond fires only when the bot is mentioned, matching against
	// the text left after stripping the leading mention.
	KindRespond Kind = "respond"
)

// Match is the result of a successful matcher evaluation.
type Match struct {
	// Pattern is the pattern that matched, nil for predicate matchers.
	Pattern *regexp.Regexp
	// Text is the matched substring (or predicate-provided text).
	Text string
	// Groups holds capture groups when the pattern has any.
	Groups []string
}

// Matcher decides whether a trigger fires for a given text. Exactly one of
// the two variants below is used per trigger; the sealed interface makes the
// choice explicit at construction instead of via optional dual fields.
type Matcher interface {
	sealedMatcher()
}

// PatternList matches the first pattern (in list order) found in the text.
type PatternList []*regexp.Regexp

func (PatternList) sealedMatcher() {}

// Predicate is a custom match function evaluated against the full event.
type Predicate func(ev domain.Event) (Match, bool)

func (Predicate) sealedMatcher() {}

// MustPatterns compiles the given expressions into a PatternList, panicking
// on invalid syntax. Intended for package-level trigger definitions.
func MustPatterns(exprs ...string) PatternList {
	patterns := make(PatternList, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// Replier delivers reply text for an event back to the chat gateway.
type Replier interface {
	Reply(ctx context.Context, ev domain.Event, text string) error
}

// Invocation is the environment handed to a trigger action.
type Invocation struct {
	Event   domain.Event
	Log     *slog.Logger
	replier Replier
}

// SafeReply sanitizes the text (mass mentions stripped, length capped) and
// sends it as a reply to the invoking event.
func (inv *Invocation) SafeReply(ctx context.Context, text string) error {
	return inv.replier.Reply(ctx, inv.Event, SanitizeReplyText(text))
}

// Trigger is one immutable rule, defined at process start.
type Trigger struct {
	// ID is a stable identifier; it is a storage key component for
	// cooldowns and overrides, so renaming it silently forgets both.
	ID              string
	Kind            Kind
	Description     string
	CooldownSeconds int
	// AllowMultiple lets evaluation continue past this trigger when it
	// fires; the default (false) is first-match-wins.
	AllowMultiple bool
	Matcher       Matcher
	Run           func(ctx context.Context, inv *Invocation, m Match) error
}

func (t *Trigger) match(ev domain.Event, text string) (Match, bool) {
	switch m := t.Matcher.(type) {
	case Predicate:
		return m(ev)
	case PatternList:
		for _, p := range m {
			if loc := p.FindStringSubmatch(text); loc != nil {
				match := Match{Pattern: p, Text: loc[0]}
				if len(loc) > 1 {
					match.Groups = loc[1:]
				}
				return match, true
			}
		}
		return Match{}, false
	default:
		return Match{}, false
	}
}
