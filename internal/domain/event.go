package domain

// Member is a user reference as seen by the chat gateway.
type Member struct {
	ID    string
	IsBot bool
}

// Event is a single inbound chat message, already parsed by the gateway.
// ScopeID is empty for direct messages.
type Event struct {
	MessageID   string
	Text        string
	AuthorID    string
	AuthorIsBot bool
	ScopeID     string
	MentionsBot bool

	// ChannelMembers lists the users currently visible in the channel the
	// event came from. Populated by the gateway on a best-effort basis;
	// triggers that need it must tolerate an empty list.
	ChannelMembers []Member
}

// DirectScope is the cooldown scope used for events without a guild.
const DirectScope = "direct"

// CooldownScope returns the scope component used for cooldown keys.
func (e Event) CooldownScope() string {
	if e.ScopeID == "" {
		return DirectScope
	}
	return e.ScopeID
}
