package plan

import (
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chis-dev/chisbot/commands"
)

type fakeMessages struct {
	msgs    map[string]*discordgo.Message
	deleted []string
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{msgs: make(map[string]*discordgo.Message)}
}

func (f *fakeMessages) key(channelID, messageID string) string {
	return channelID + "/" + messageID
}

func (f *fakeMessages) add(channelID string, postedAt time.Time) (messageID string) {
	messageID = snowflakeAt(postedAt)
	f.msgs[f.key(channelID, messageID)] = &discordgo.Message{
		ID:        messageID,
		ChannelID: channelID,
	}
	return messageID
}

func (f *fakeMessages) Message(channelID, messageID string) (*discordgo.Message, bool) {
	m, ok := f.msgs[f.key(channelID, messageID)]
	return m, ok
}

func (f *fakeMessages) DeleteMessage(channelID, messageID string) error {
	delete(f.msgs, f.key(channelID, messageID))
	f.deleted = append(f.deleted, messageID)
	return nil
}

// snowflakeAt builds a discord snowflake whose embedded timestamp is t.
func snowflakeAt(t time.Time) string {
	const discordEpochMs = 1420070400000
	return strconv.FormatInt((t.UnixNano()/int64(time.Millisecond)-discordEpochMs)<<22, 10)
}

func TestSnowflakeAt(t *testing.T) {
	want := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	got, err := discordgo.SnowflakeTimestamp(snowflakeAt(want))
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func boundPlan(t *testing.T, repo *Repository, messages *fakeMessages, postedAt time.Time) *Plan {
	t.Helper()

	_, err := repo.Create(testGuild, "u1", "existing", 5, nil)
	require.NoError(t, err)

	messageID := messages.add("c1", postedAt)
	p, err := repo.LastMessage(testGuild, "c1", messageID)
	require.NoError(t, err)
	return p
}

func TestProtectedFreshMessage(t *testing.T) {
	repo := newTestRepo()
	messages := newFakeMessages()
	guard := NewOverwriteGuard(messages)

	now := time.Now()
	p := boundPlan(t, repo, messages, now.Add(-10*time.Minute))

	assert.True(t, guard.Protected(p, now))
}

func TestProtectionExpiresAfterWindow(t *testing.T) {
	repo := newTestRepo()
	messages := newFakeMessages()
	guard := NewOverwriteGuard(messages)

	now := time.Now()
	p := boundPlan(t, repo, messages, now.Add(-2*time.Hour))

	assert.False(t, guard.Protected(p, now))
}

func TestProtectionBypassedWhenMessageGone(t *testing.T) {
	repo := newTestRepo()
	messages := newFakeMessages()
	guard := NewOverwriteGuard(messages)

	now := time.Now()
	p := boundPlan(t, repo, messages, now.Add(-10*time.Minute))

	require.NoError(t, messages.DeleteMessage("c1", p.MessageID))
	assert.False(t, guard.Protected(p, now), "a plan with no visible message is abandoned")
}

func TestProtectedNoPlanOrNoBinding(t *testing.T) {
	guard := NewOverwriteGuard(newFakeMessages())

	assert.False(t, guard.Protected(nil, time.Now()))
	assert.False(t, guard.Protected(&Plan{ID: testGuild}, time.Now()))
}

func TestConfirmAppliesStashedCandidate(t *testing.T) {
	repo := newTestRepo()
	messages := newFakeMessages()
	guard := NewOverwriteGuard(messages)

	now := time.Now()
	boundPlan(t, repo, messages, now.Add(-10*time.Minute))

	when := time.Date(2023, 5, 1, 21, 0, 0, 0, time.UTC)
	guard.Stash(testGuild, Candidate{Title: "new plan", Spots: 4, Time: &when})

	// The intercepted request must not have touched the stored plan.
	current, err := repo.Read(testGuild)
	require.NoError(t, err)
	assert.Equal(t, "existing", current.Title)

	cand, ok := guard.Confirm(testGuild)
	require.True(t, ok)

	p, err := repo.Create(testGuild, "u2", cand.Title, cand.Spots, cand.Time)
	require.NoError(t, err)
	assert.Equal(t, "new plan", p.Title)
	assert.Equal(t, 4, p.Spots)
	require.NotNil(t, p.Time)
	assert.True(t, p.Time.Equal(when))

	_, ok = guard.Confirm(testGuild)
	assert.False(t, ok, "confirm consumes the candidate")
}

func TestCancelLeavesPlanIntact(t *testing.T) {
	repo := newTestRepo()
	messages := newFakeMessages()
	guard := NewOverwriteGuard(messages)

	now := time.Now()
	boundPlan(t, repo, messages, now.Add(-10*time.Minute))

	guard.Stash(testGuild, Candidate{Title: "new plan", Spots: 4})
	guard.Cancel(testGuild)

	_, ok := guard.Confirm(testGuild)
	assert.False(t, ok)

	current, err := repo.Read(testGuild)
	require.NoError(t, err)
	assert.Equal(t, "existing", current.Title)
	assert.Equal(t, 5, current.Spots)
}

func TestPendingCandidatesAreGuildScoped(t *testing.T) {
	guard := NewOverwriteGuard(newFakeMessages())

	guard.Stash("guildA", Candidate{Title: "a"})
	guard.Stash("guildB", Candidate{Title: "b"})

	cand, ok := guard.Confirm("guildA")
	require.True(t, ok)
	assert.Equal(t, "a", cand.Title)

	cand, ok = guard.Confirm("guildB")
	require.True(t, ok)
	assert.Equal(t, "b", cand.Title)
}

func TestConfirmWithoutStash(t *testing.T) {
	guard := NewOverwriteGuard(newFakeMessages())

	_, ok := guard.Confirm(testGuild)
	assert.False(t, ok)
}

func TestPendingCandidateExpires(t *testing.T) {
	guard := NewOverwriteGuard(newFakeMessages())

	guard.pending.Set(testGuild, Candidate{Title: "stale"}, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := guard.Confirm(testGuild)
	assert.False(t, ok, "an expired candidate must not apply")
}

func TestDeleteRenderedSwallowsAbsence(t *testing.T) {
	messages := newFakeMessages()

	deleteRendered(messages, nil)
	deleteRendered(messages, &Plan{ID: testGuild, ChannelID: "c1", MessageID: "123"})
	assert.Empty(t, messages.deleted, "missing messages are not deleted")

	id := messages.add("c1", time.Now())
	deleteRendered(messages, &Plan{ID: testGuild, ChannelID: "c1", MessageID: id})
	assert.Equal(t, []string{id}, messages.deleted)
}

func TestConfirmButtonIDs(t *testing.T) {
	row, ok := ConfirmButtons()[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)

	yes := row.Components[0].(discordgo.Button)
	no := row.Components[1].(discordgo.Button)
	assert.Equal(t, commands.ButtonCustomID("plan", "yes"), yes.CustomID)
	assert.Equal(t, commands.ButtonCustomID("plan", "no"), no.CustomID)
}
