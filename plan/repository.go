package plan

import (
	"time"

	"emperror.dev/errors"
	"github.com/lib/pq"

	"github.com/chis-dev/chisbot/common/keylock"
)

// ErrGuildBusy is returned when another mutation against the same guild's
// plan holds the lock past the wait timeout.
const ErrGuildBusy = errors.Sentinel("another plan update is in progress, try again")

const (
	lockWait = 10 * time.Second
	lockTTL  = 30 * time.Second
)

// Repository owns all plan and timezone-preference mutations. Every
// read-modify-write runs under a per-guild lock, so serialized operations
// can never push the roster past the capacity.
type Repository struct {
	plans PlanStore
	tz    UserTzStore

	locks *keylock.KeyLock[string]
}

func NewRepository(plans PlanStore, tz UserTzStore) *Repository {
	return &Repository{
		plans: plans,
		tz:    tz,
		locks: keylock.NewKeyLock[string](),
	}
}

func (r *Repository) lock(guildID string) (int64, error) {
	handle := r.locks.Lock(guildID, lockWait, lockTTL)
	if handle == -1 {
		return 0, ErrGuildBusy
	}
	return handle, nil
}

// Create replaces any existing plan for the guild with a fresh one whose
// roster contains only user.
func (r *Repository) Create(guildID, user string, title string, spots int, t *time.Time) (*Plan, error) {
	handle, err := r.lock(guildID)
	if err != nil {
		return nil, err
	}
	defer r.locks.Unlock(guildID, handle)

	return r.createLocked(guildID, user, title, spots, t)
}

func (r *Repository) createLocked(guildID, user string, title string, spots int, t *time.Time) (*Plan, error) {
	err := r.plans.Delete(guildID)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		ID:           guildID,
		Title:        NormalizeTitle(title),
		Spots:        NormalizeSpots(spots),
		Time:         t,
		Participants: pq.StringArray{user},
	}

	err = r.plans.Create(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Read returns the guild's plan, or nil when there is none.
func (r *Repository) Read(guildID string) (*Plan, error) {
	return r.plans.Find(guildID)
}

// Join appends user to the roster. When no plan exists it creates one with
// user as the only participant. Returns nil when the user is already in or
// the plan is full.
func (r *Repository) Join(guildID, user string) (*Plan, error) {
	handle, err := r.lock(guildID)
	if err != nil {
		return nil, err
	}
	defer r.locks.Unlock(guildID, handle)

	p, err := r.plans.Find(guildID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return r.createLocked(guildID, user, "", 0, nil)
	}

	if p.HasParticipant(user) || p.Full() {
		return nil, nil
	}

	p.Participants = append(p.Participants, user)
	err = r.plans.Save(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Leave removes user from the roster, preserving the order of the rest.
// Returns nil when there is no plan or the user was not in it.
func (r *Repository) Leave(guildID, user string) (*Plan, error) {
	handle, err := r.lock(guildID)
	if err != nil {
		return nil, err
	}
	defer r.locks.Unlock(guildID, handle)

	p, err := r.plans.Find(guildID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.HasParticipant(user) {
		return nil, nil
	}

	kept := make(pq.StringArray, 0, len(p.Participants)-1)
	for _, v := range p.Participants {
		if v != user {
			kept = append(kept, v)
		}
	}
	p.Participants = kept

	err = r.plans.Save(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Change applies a partial update, only non-nil fields are touched. Lowering
// spots below the roster size truncates the roster to the earliest joiners.
// Returns nil when there is no plan.
func (r *Repository) Change(guildID string, title *string, spots *int, t *time.Time) (*Plan, error) {
	handle, err := r.lock(guildID)
	if err != nil {
		return nil, err
	}
	defer r.locks.Unlock(guildID, handle)

	p, err := r.plans.Find(guildID)
	if err != nil || p == nil {
		return nil, err
	}

	if title != nil {
		p.Title = *title
	}
	if spots != nil {
		p.Spots = NormalizeSpots(*spots)
		if len(p.Participants) > p.Spots {
			p.Participants = p.Participants[:p.Spots]
		}
	}
	if t != nil {
		p.Time = t
	}

	err = r.plans.Save(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Rename changes just the title, falling back to the default label when the
// new one is blank or over-length.
func (r *Repository) Rename(guildID, title string) (*Plan, error) {
	normalized := NormalizeTitle(title)
	return r.Change(guildID, &normalized, nil, nil)
}

// LastMessage records where the plan was last rendered. Returns nil when
// there is no plan.
func (r *Repository) LastMessage(guildID, channelID, messageID string) (*Plan, error) {
	handle, err := r.lock(guildID)
	if err != nil {
		return nil, err
	}
	defer r.locks.Unlock(guildID, handle)

	p, err := r.plans.Find(guildID)
	if err != nil || p == nil {
		return nil, err
	}

	p.ChannelID = channelID
	p.MessageID = messageID

	err = r.plans.Save(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SaveUserTz upserts the user's timezone preference.
func (r *Repository) SaveUserTz(userID, timezone string) error {
	return r.tz.SaveTz(userID, timezone)
}

// GetUserTz returns the user's timezone preference, or fallback when none
// is set.
func (r *Repository) GetUserTz(userID, fallback string) (string, error) {
	tz, err := r.tz.GetTz(userID)
	if err != nil {
		return "", err
	}
	if tz == "" {
		return fallback, nil
	}
	return tz, nil
}
