package trigger

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maju6406/shundor-bot/internal/domain"
)

type fakeGranter struct {
	remaining time.Duration
	awarded   []domain.AwardResult

	gotReceivers []domain.Member
	gotAmount    int
	armed        bool
}

func (f *fakeGranter) GiverCooldownRemaining(context.Context, string, string) (time.Duration, error) {
	return f.remaining, nil
}

func (f *fakeGranter) ArmGiverCooldown(context.Context, string, string) error {
	f.armed = true
	return nil
}

func (f *fakeGranter) AwardBulk(_ context.Context, _, _ string, receivers []domain.Member, amount int) ([]domain.AwardResult, error) {
	f.gotReceivers = receivers
	f.gotAmount = amount
	return f.awarded, nil
}

func builtinsDispatcher(t *testing.T, granter PointsGranter) *Dispatcher {
	t.Helper()
	d, _ := newTestDispatcher(t, Builtins(granter), nil)
	return d
}

func dispatchBuiltin(t *testing.T, d *Dispatcher, ev domain.Event) []string {
	t.Helper()
	rsp := &recordingReplier{}
	d.Dispatch(context.Background(), ev, rsp)
	return rsp.replies
}

func TestBuiltinsRegisterCleanly(t *testing.T) {
	d := builtinsDispatcher(t, &fakeGranter{})
	require.True(t, d.HasTrigger("hubot.hear.points-bang"))
	require.True(t, d.HasTrigger("example.respond.echo"))

	// points-bang sits first so a later pattern can never shadow a grant.
	assert.Equal(t, "hubot.hear.points-bang", d.Triggers()[0].ID)
}

func TestBuiltinHodor(t *testing.T) {
	d := builtinsDispatcher(t, &fakeGranter{})

	replies := dispatchBuiltin(t, d, hearEvent("did someone say hodor?"))
	assert.Equal(t, []string{"HODOR!"}, replies)

	// Substring without a word boundary must not fire.
	replies = dispatchBuiltin(t, d, hearEvent("hodorific"))
	assert.Empty(t, replies)
}

func TestBuiltinReactionGifs(t *testing.T) {
	d := builtinsDispatcher(t, &fakeGranter{})

	replies := dispatchBuiltin(t, d, hearEvent("that was a MIC DROP moment"))
	require.Len(t, replies, 1)
	assert.Contains(t, micDropGifs, replies[0])

	replies = dispatchBuiltin(t, d, hearEvent("see you at 530"))
	require.Len(t, replies, 1)
	assert.Equal(t, fiveThirtyGifs[0], replies[0])
}

func TestBuiltinEcho(t *testing.T) {
	d := builtinsDispatcher(t, &fakeGranter{})

	replies := dispatchBuiltin(t, d, respondEvent("echo hello world"))
	assert.Equal(t, []string{"hello world"}, replies)

	// Without a mention the respond trigger stays silent.
	replies = dispatchBuiltin(t, d, hearEvent("echo hello world"))
	assert.Empty(t, replies)
}

func TestPointsBangAwards(t *testing.T) {
	granter := &fakeGranter{
		awarded: []domain.AwardResult{
			{ReceiverID: "u2", Total: 1},
			{ReceiverID: "u3", Total: 100},
		},
	}
	d := builtinsDispatcher(t, granter)

	ev := hearEvent("points!")
	ev.ChannelMembers = []domain.Member{
		{ID: "user-1"},          // the giver, excluded
		{ID: "u2"},
		{ID: "u3"},
		{ID: "bot-1", IsBot: true}, // excluded
	}

	replies := dispatchBuiltin(t, d, ev)
	require.Len(t, replies, 1)

	// The full member list goes through; the granter owns bot/self skips.
	assert.Equal(t, ev.ChannelMembers, granter.gotReceivers)
	assert.Equal(t, 1, granter.gotAmount)
	assert.True(t, granter.armed)

	lines := strings.Split(replies[0], "\n")
	assert.Equal(t, "+1 point to 2 users: <@u2> <@u3>", lines[0])

	// u3 hit a milestone total, so a celebration line follows.
	assert.Contains(t, replies[0], "<@u3> 🎊 OMGOMG century!! 🎊")
}

func TestPointsBangCooldownActive(t *testing.T) {
	d := builtinsDispatcher(t, &fakeGranter{remaining: 12 * time.Second})

	ev := hearEvent("points!")
	ev.ChannelMembers = []domain.Member{{ID: "u2"}}

	replies := dispatchBuiltin(t, d, ev)
	assert.Equal(t, []string{"Points cooldown active (12s remaining)."}, replies)
}

func TestPointsBangNoReceivers(t *testing.T) {
	granter := &fakeGranter{}
	d := builtinsDispatcher(t, granter)

	ev := hearEvent("points!")
	ev.ChannelMembers = []domain.Member{
		{ID: "user-1"},
		{ID: "bot-1", IsBot: true},
	}

	replies := dispatchBuiltin(t, d, ev)
	assert.Equal(t, []string{"No other real users found in this channel right now."}, replies)

	// Nothing was granted, so the giver cooldown stays unarmed.
	assert.False(t, granter.armed)
}

func TestPointsBangRequiresExactText(t *testing.T) {
	d := builtinsDispatcher(t, &fakeGranter{awarded: []domain.AwardResult{{ReceiverID: "u2", Total: 1}}})

	ev := hearEvent("I want points! now")
	ev.ChannelMembers = []domain.Member{{ID: "u2"}}

	replies := dispatchBuiltin(t, d, ev)
	assert.Empty(t, replies)
}

func TestPointsBangIgnoredInDirectScope(t *testing.T) {
	granter := &fakeGranter{}
	d := builtinsDispatcher(t, granter)

	ev := hearEvent("points!")
	ev.ScopeID = ""
	ev.ChannelMembers = []domain.Member{{ID: "u2"}}

	replies := dispatchBuiltin(t, d, ev)
	assert.Empty(t, replies)
	assert.Nil(t, granter.gotReceivers)
}
