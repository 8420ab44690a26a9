package plan

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/patrickmn/go-cache"
)

// Candidate is the create-request a confirmation is pending for.
type Candidate struct {
	Title string
	Spots int
	Time  *time.Time
}

// pendingLifetime bounds how long a stashed candidate survives. A confirm
// button pressed after this applies the defaults instead of stale values.
const pendingLifetime = 10 * time.Minute

// OverwriteGuard intercepts plan creation while a recently posted plan
// message is still fresh, holding the candidate until the requester picks
// yes or no. Pending candidates are keyed by guild, so flows in different
// guilds cannot clobber each other.
type OverwriteGuard struct {
	pending  *cache.Cache
	messages MessageProvider
}

func NewOverwriteGuard(messages MessageProvider) *OverwriteGuard {
	return &OverwriteGuard{
		pending:  cache.New(pendingLifetime, time.Minute),
		messages: messages,
	}
}

// Protected reports whether creating over current needs confirmation: the
// plan's bound message must still be retrievable and younger than the
// protection window. A plan whose message is gone is considered abandoned
// and overwritten freely.
func (g *OverwriteGuard) Protected(current *Plan, now time.Time) bool {
	if current == nil {
		return false
	}

	m, ok := g.messages.Message(current.ChannelID, current.MessageID)
	if !ok {
		return false
	}

	posted, err := discordgo.SnowflakeTimestamp(m.ID)
	if err != nil {
		logger.WithError(err).Error("bad snowflake on plan message")
		return false
	}

	return now.Sub(posted) < ProtectionWindow
}

// Stash saves the intercepted candidate for the guild, replacing any
// earlier one.
func (g *OverwriteGuard) Stash(guildID string, c Candidate) {
	g.pending.Set(guildID, c, cache.DefaultExpiration)
}

// Confirm consumes the guild's pending candidate. When it expired or was
// never stashed, ok is false and the caller falls back to defaults.
func (g *OverwriteGuard) Confirm(guildID string) (c Candidate, ok bool) {
	v, ok := g.pending.Get(guildID)
	if !ok {
		return Candidate{}, false
	}

	g.pending.Delete(guildID)
	return v.(Candidate), true
}

// Cancel discards the guild's pending candidate.
func (g *OverwriteGuard) Cancel(guildID string) {
	g.pending.Delete(guildID)
}
