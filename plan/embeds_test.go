package plan

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanEmbedRoster(t *testing.T) {
	p := &Plan{
		ID:           testGuild,
		Title:        "Game night",
		Spots:        5,
		Participants: pq.StringArray{"1", "2", "3"},
	}

	embed := PlanEmbed(p)
	assert.Equal(t, "Game night", embed.Title)

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Participants (3/5)", embed.Fields[0].Name)
	assert.Equal(t, "1. <@!1>\n2. <@!2>\n3. <@!3>", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[1].Value, "/join")
}

func TestPlanEmbedEmptyRoster(t *testing.T) {
	embed := PlanEmbed(&Plan{ID: testGuild, Title: DefaultTitle, Spots: 10})
	assert.Equal(t, "No one has joined the plan.", embed.Fields[0].Value)
}

func TestPlanEmbedScheduledTime(t *testing.T) {
	when := time.Date(2023, 5, 1, 21, 0, 0, 0, time.UTC)
	embed := PlanEmbed(&Plan{ID: testGuild, Title: "t", Spots: 10, Time: &when})

	assert.Contains(t, embed.Title, "<t:1682974800:t>")
	assert.Contains(t, embed.Description, "Starts ")
}

func TestStatusEmbedLevels(t *testing.T) {
	cases := []struct {
		level StatusLevel
		title string
		color int
	}{
		{StatusError, ":no_entry_sign: Error", colorError},
		{StatusWarning, ":warning: Warning", colorWarning},
		{StatusInfo, ":information_source: Information", colorInfo},
		{StatusSuccess, ":white_check_mark: Success", colorSuccess},
	}

	for _, tc := range cases {
		embed := StatusEmbed(tc.level, "", "msg")
		assert.Equal(t, tc.title, embed.Title)
		assert.Equal(t, tc.color, embed.Color)
		assert.Equal(t, "msg", embed.Description)
	}

	embed := StatusEmbed(StatusWarning, "Plan Recently Used", "msg")
	assert.Equal(t, ":warning: Plan Recently Used", embed.Title)
}
