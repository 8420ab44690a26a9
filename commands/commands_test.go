package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild-1",
			Member:  &discordgo.Member{User: &discordgo.User{ID: "user-1", Username: "tester"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "plan",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "title", Type: discordgo.ApplicationCommandOptionString, Value: "game night"},
					{Name: "spots", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(12)},
					{Name: "member", Type: discordgo.ApplicationCommandOptionUser, Value: "user-2"},
				},
				Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
					Users: map[string]*discordgo.User{"user-2": {ID: "user-2", Username: "friend"}},
				},
			},
		},
	}
}

func TestDataOptionBag(t *testing.T) {
	data := newData(nil, testInteraction())

	assert.Equal(t, "guild-1", data.GuildID)
	require.NotNil(t, data.User)
	assert.Equal(t, "user-1", data.User.ID)

	title, ok := data.StringOption("title")
	assert.True(t, ok)
	assert.Equal(t, "game night", title)

	spots, ok := data.IntOption("spots")
	assert.True(t, ok)
	assert.Equal(t, 12, spots)

	member := data.UserOption("member")
	require.NotNil(t, member)
	assert.Equal(t, "friend", member.Username, "user option should resolve through the resolved map")

	_, ok = data.StringOption("time")
	assert.False(t, ok, "absent options should report not supplied")
	assert.Nil(t, data.UserOption("missing"))

	// wrong type lookups miss rather than panic
	_, ok = data.IntOption("title")
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	registry = make(map[string]*Command)

	run := func(data *Data) error { return nil }
	RegisterCommands(
		&Command{Name: "view", Description: "View the plan", RunFunc: run},
		&Command{Name: "gather", Description: "Mention all participants", RunFunc: run},
	)

	require.NotNil(t, Get("view"))
	assert.Nil(t, Get("nope"))

	appCmds := ApplicationCommands()
	require.Len(t, appCmds, 2)
	assert.Equal(t, "gather", appCmds[0].Name, "application commands should be sorted by name")
	assert.Equal(t, "view", appCmds[1].Name)

	assert.Panics(t, func() {
		RegisterCommands(&Command{Name: "view", RunFunc: run})
	}, "duplicate names should panic at startup")
}

func TestButtonCustomID(t *testing.T) {
	assert.Equal(t, "plan:yes", ButtonCustomID("plan", "yes"))
}
