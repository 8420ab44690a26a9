package plan

import (
	"time"

	"github.com/lib/pq"
)

// Plan is the single live plan for a guild, keyed by the guild id.
// Participants is ordered by join time and never has duplicates or more
// entries than Spots.
type Plan struct {
	ID    string `gorm:"primary_key"`
	Title string
	Spots int
	Time  *time.Time

	Participants pq.StringArray `gorm:"type:text[]"`

	// Where the plan was last rendered, empty until the first render.
	ChannelID string
	MessageID string
}

func (Plan) TableName() string {
	return "plan"
}

func (p *Plan) HasParticipant(user string) bool {
	for _, v := range p.Participants {
		if v == user {
			return true
		}
	}
	return false
}

func (p *Plan) Full() bool {
	return len(p.Participants) >= p.Spots
}

// UserTzConfig holds a user's preferred timezone, used to interpret their
// free-text time input. Global per user, not guild scoped.
type UserTzConfig struct {
	ID       uint   `gorm:"primary_key"`
	UserID   string `gorm:"unique_index"`
	Timezone string
}

func (UserTzConfig) TableName() string {
	return "user_tz_config"
}
