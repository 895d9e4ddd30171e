// Package trigger implements the message trigger dispatch engine: an ordered
// rule list evaluated against inbound chat events, with per-key cooldown
// admission control and per-scope enable overrides.
package trigger
