package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/maju6406/shundor-bot/internal/domain"
	"github.com/maju6406/shundor-bot/internal/logging"
	"github.com/maju6406/shundor-bot/internal/metrics"
)

const actionFailureNotice = "Something went wrong while handling that. Check logs for details."

// OverrideLookup is the read side of the per-scope trigger overrides.
type OverrideLookup interface {
	GetOverride(ctx context.Context, scopeID, triggerID string) (enabled, found bool, err error)
}

// Dispatcher evaluates the registered triggers, in registration order,
// against inbound events. It is safe for concurrent Dispatch calls; the
// cooldown store is the only shared mutable state and is internally locked.
type Dispatcher struct {
	botID     string
	mentionRe *regexp.Regexp
	triggers  []Trigger
	cooldowns *CooldownStore
	overrides OverrideLookup
}

// NewDispatcher validates the trigger list and builds a dispatcher.
// Validation failures are programming errors in the trigger definitions
// (duplicate ids, negative cooldowns, missing matcher or action) and are
// reported at construction, never at dispatch time.
func NewDispatcher(botID string, triggers []Trigger, cooldowns *CooldownStore, overrides OverrideLookup) (*Dispatcher, error) {
	if botID == "" {
		return nil, fmt.Errorf("bot user id must not be empty")
	}

	seen := make(map[string]struct{}, len(triggers))
	for i := range triggers {
		t := &triggers[i]
		if t.ID == "" {
			return nil, fmt.Errorf("trigger at index %d has an empty id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate trigger id %q", t.ID)
		}
		seen[t.ID] = struct{}{}

		if t.Kind != KindHear && t.Kind != KindRespond {
			return nil, fmt.Errorf("trigger %q has invalid kind %q", t.ID, t.Kind)
		}
		if t.CooldownSeconds < 0 {
			return nil, fmt.Errorf("trigger %q has negative cooldown %d", t.ID, t.CooldownSeconds)
		}
		if t.Matcher == nil {
			return nil, fmt.Errorf("trigger %q has no matcher", t.ID)
		}
		if t.Run == nil {
			return nil, fmt.Errorf("trigger %q has no action", t.ID)
		}
	}

	return &Dispatcher{
		botID:     botID,
		mentionRe: mentionPattern(botID),
		triggers:  triggers,
		cooldowns: cooldowns,
		overrides: overrides,
	}, nil
}

// Triggers returns a copy of the registered trigger list, in order.
func (d *Dispatcher) Triggers() []Trigger {
	out := make([]Trigger, len(d.triggers))
	copy(out, d.triggers)
	return out
}

// HasTrigger reports whether a trigger with the given id is registered.
func (d *Dispatcher) HasTrigger(id string) bool {
	for i := range d.triggers {
		if d.triggers[i].ID == id {
			return true
		}
	}
	return false
}

// Dispatch runs the trigger list against one event. It never returns an
// error: action failures are contained at the trigger boundary so one bad
// rule cannot take down the engine or affect other events.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event, rsp Replier) {
	// Self-produced and other automated events must never trigger rules.
	if ev.AuthorIsBot || ev.AuthorID == d.botID {
		return
	}

	timer := prometheus.NewTimer(metrics.DispatchDuration)
	defer timer.ObserveDuration()

	residual, mentionOK := "", false
	if ev.MentionsBot {
		residual, mentionOK = stripLeadingMention(d.mentionRe, ev.Text)
	}

	for i := range d.triggers {
		t := &d.triggers[i]

		if ev.ScopeID != "" && !d.triggerEnabled(ctx, ev.ScopeID, t.ID) {
			continue
		}

		text := ev.Text
		if t.Kind == KindRespond {
			if !mentionOK {
				continue
			}
			text = residual
		}

		key := CooldownKey{Scope: ev.CooldownScope(), Actor: ev.AuthorID, TriggerID: t.ID}
		if d.cooldowns.IsBlocked(key) {
			metrics.TriggerCooldownBlocks.Inc()
			continue
		}

		m, ok := t.match(ev, text)
		if !ok {
			continue
		}

		// Armed before the action runs so a failing action still
		// consumes the cooldown.
		d.cooldowns.Arm(key, t.CooldownSeconds)

		metrics.TriggersFired.WithLabelValues(t.ID).Inc()
		slog.InfoContext(ctx, "Message trigger fired",
			"trigger_id", t.ID,
			"kind", t.Kind,
			"scope_id", ev.ScopeID,
		)

		d.runAction(ctx, t, ev, rsp, m)

		if !t.AllowMultiple {
			return
		}
	}
}

func (d *Dispatcher) runAction(ctx context.Context, t *Trigger, ev domain.Event, rsp Replier, m Match) {
	defer func() {
		if r := recover(); r != nil {
			d.reportActionFailure(ctx, t, ev, rsp, fmt.Errorf("panic: %v", r))
		}
	}()

	inv := &Invocation{
		Event:   ev,
		Log:     logging.WithTrigger(t.ID).With("scope_id", ev.ScopeID),
		replier: rsp,
	}
	if err := t.Run(ctx, inv, m); err != nil {
		d.reportActionFailure(ctx, t, ev, rsp, err)
	}
}

func (d *Dispatcher) reportActionFailure(ctx context.Context, t *Trigger, ev domain.Event, rsp Replier, err error) {
	metrics.TriggerActionFailures.WithLabelValues(t.ID).Inc()
	slog.ErrorContext(ctx, "Trigger action failed",
		"trigger_id", t.ID,
		"scope_id", ev.ScopeID,
		"error", err,
	)
	if replyErr := rsp.Reply(ctx, ev, actionFailureNotice); replyErr != nil {
		slog.ErrorContext(ctx, "Failed to notify user about trigger failure",
			"trigger_id", t.ID,
			"error", replyErr,
		)
	}
}

// triggerEnabled resolves the per-scope override; absence and lookup
// failures both default to enabled.
func (d *Dispatcher) triggerEnabled(ctx context.Context, scopeID, triggerID string) bool {
	enabled, found, err := d.overrides.GetOverride(ctx, scopeID, triggerID)
	if err != nil {
		slog.WarnContext(ctx, "Override lookup failed, defaulting to enabled",
			"trigger_id", triggerID,
			"scope_id", scopeID,
			"error", err,
		)
		return true
	}
	if !found {
		return true
	}
	return enabled
}
