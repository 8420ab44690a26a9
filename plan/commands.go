package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/chis-dev/chisbot/commands"
	"github.com/chis-dev/chisbot/common"
	"github.com/chis-dev/chisbot/timeparse"
	"github.com/chis-dev/chisbot/tzdir"
)

const timeExamples = "Examples:\n `9` (Defaults to PM)\n`Tomorrow at noon`\n`Friday at 7am`\n`This is at 2.30`"

// planCommands bundles the collaborators the handlers need so tests can
// substitute fakes.
type planCommands struct {
	repo     *Repository
	guard    *OverwriteGuard
	messages MessageProvider
}

var _ commands.CommandProvider = (*Plugin)(nil)

func (p *Plugin) AddCommands() {
	messages := NewSessionMessages(common.BotSession)
	store := &GORMStore{DB: common.GORM}

	c := &planCommands{
		repo:     NewRepository(store, store),
		guard:    NewOverwriteGuard(messages),
		messages: messages,
	}

	titleOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "title",
		Description: "The title of the plan",
	}
	spotsOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "spots",
		Description: "The number of spots in the plan",
	}
	timeOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "time",
		Description: "Time of the event. Use /timezone to set your locale.",
	}

	commands.RegisterCommands(
		&commands.Command{
			Name:         "plan",
			Description:  "Create a plan (This will overwrite any existing plans)",
			Options:      []*discordgo.ApplicationCommandOption{titleOption, spotsOption, timeOption},
			RunFunc:      c.cmdPlan,
			HandleButton: c.handlePlanButton,
		},
		&commands.Command{
			Name:        "join",
			Description: "Join the plan",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The member to add",
				},
			},
			RunFunc: c.cmdJoin,
		},
		&commands.Command{
			Name:        "leave",
			Description: "Leave the plan",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The member to remove",
				},
			},
			RunFunc: c.cmdLeave,
		},
		&commands.Command{
			Name:        "change",
			Description: "Change an aspect of the plan",
			Options:     []*discordgo.ApplicationCommandOption{titleOption, spotsOption, timeOption},
			RunFunc:     c.cmdChange,
		},
		&commands.Command{
			Name:        "rename",
			Description: "Rename the plan",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "The new title",
					Required:    true,
				},
			},
			RunFunc: c.cmdRename,
		},
		&commands.Command{
			Name:        "view",
			Description: "View the plan",
			RunFunc:     c.cmdView,
		},
		&commands.Command{
			Name:        "gather",
			Description: "Mention all participants",
			RunFunc:     c.cmdGather,
		},
		&commands.Command{
			Name:        "timezone",
			Description: "Configure your personal timezone",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "timezone",
					Description:  "Name of the timezone in which you wish to see plan times",
					Required:     true,
					Autocomplete: true,
				},
			},
			RunFunc: c.cmdTimezone,
			Autocomplete: map[string]commands.AutocompleteFunc{
				"timezone": c.autocompleteTimezone,
			},
		},
	)
}

func replyStatus(data *commands.Data, level StatusLevel, title, message string) error {
	return data.Reply(&commands.Response{
		Embeds:    []*discordgo.MessageEmbed{StatusEmbed(level, title, message)},
		Ephemeral: true,
	})
}

// resolveTime parses the "time" option against the caller's preferred
// timezone. The second return is false when the input could not be parsed,
// after the error reply was already sent.
func (c *planCommands) resolveTime(data *commands.Data) (*time.Time, bool, error) {
	input, ok := data.StringOption("time")
	if !ok || strings.TrimSpace(input) == "" {
		return nil, true, nil
	}

	tzName, err := c.repo.GetUserTz(data.User.ID, common.ConfDefaultTimezone.GetString())
	if err != nil {
		return nil, false, err
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		logger.WithError(err).WithField("tz", tzName).Error("stored timezone no longer loads, using UTC")
		loc = time.UTC
	}

	t, err := timeparse.Parse(input, loc, time.Now())
	if err != nil {
		return nil, false, replyStatus(data, StatusError, "", "Please specify a correct time.\n"+timeExamples)
	}

	return &t, true, nil
}

// repost deletes the plan's previous rendered message, replies with a fresh
// plan embed and rebinds the plan to the new message.
func (c *planCommands) repost(data *commands.Data, p *Plan) error {
	deleteRendered(c.messages, p)

	err := data.Reply(&commands.Response{
		Embeds: []*discordgo.MessageEmbed{PlanEmbed(p)},
	})
	if err != nil {
		return err
	}

	m, err := data.ReplyMessage()
	if err != nil {
		logger.WithError(err).Error("failed fetching plan reply message")
		return nil
	}

	_, err = c.repo.LastMessage(data.GuildID, m.ChannelID, m.ID)
	return err
}

func (c *planCommands) cmdPlan(data *commands.Data) error {
	title, _ := data.StringOption("title")
	title = NormalizeTitle(title)

	spots, _ := data.IntOption("spots")
	spots = NormalizeSpots(spots)

	t, ok, err := c.resolveTime(data)
	if !ok || err != nil {
		return err
	}

	current, err := c.repo.Read(data.GuildID)
	if err != nil {
		return err
	}

	if c.guard.Protected(current, time.Now()) {
		c.guard.Stash(data.GuildID, Candidate{Title: title, Spots: spots, Time: t})

		return data.Reply(&commands.Response{
			Embeds: []*discordgo.MessageEmbed{
				PlanEmbed(current),
				StatusEmbed(StatusWarning, "Plan Recently Used",
					"Would you like overwrite the existing plan shown above?"),
			},
			Components: ConfirmButtons(),
			Ephemeral:  true,
		})
	}

	p, err := c.repo.Create(data.GuildID, data.User.ID, title, spots, t)
	if err != nil {
		return err
	}
	return c.repost(data, p)
}

func (c *planCommands) handlePlanButton(data *commands.ButtonData) error {
	switch data.Action {
	case "no":
		c.guard.Cancel(data.GuildID)

		return data.Update(&commands.Response{
			Embeds: []*discordgo.MessageEmbed{
				StatusEmbed(StatusInfo, "", "To add yourself to the existing plan use `/join`."),
			},
			Components: []discordgo.MessageComponent{},
		})

	case "yes":
		err := data.Update(&commands.Response{
			Embeds: []*discordgo.MessageEmbed{
				StatusEmbed(StatusInfo, "", "Plan overwritten, you can dismiss this message."),
			},
			Components: []discordgo.MessageComponent{},
		})
		if err != nil {
			return err
		}

		current, err := c.repo.Read(data.GuildID)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		deleteRendered(c.messages, current)

		cand, ok := c.guard.Confirm(data.GuildID)
		if !ok {
			cand = Candidate{Title: DefaultTitle, Spots: DefaultSpots}
		}

		p, err := c.repo.Create(data.GuildID, data.User.ID, cand.Title, cand.Spots, cand.Time)
		if err != nil {
			return err
		}

		m, err := data.FollowUp(&commands.Response{
			Embeds: []*discordgo.MessageEmbed{PlanEmbed(p)},
		})
		if err != nil {
			return err
		}

		_, err = c.repo.LastMessage(data.GuildID, m.ChannelID, m.ID)
		return err
	}

	return nil
}

func (c *planCommands) cmdJoin(data *commands.Data) error {
	user := data.UserOption("member")
	if user == nil {
		user = data.User
	}

	p, err := c.repo.Join(data.GuildID, user.ID)
	if err != nil {
		return err
	}
	if p == nil {
		return replyStatus(data, StatusError, "", "Unable to join the current plan.")
	}
	return c.repost(data, p)
}

func (c *planCommands) cmdLeave(data *commands.Data) error {
	user := data.UserOption("member")
	if user == nil {
		user = data.User
	}

	p, err := c.repo.Leave(data.GuildID, user.ID)
	if err != nil {
		return err
	}
	if p == nil {
		return replyStatus(data, StatusError, "", "Unable to leave the current plan.")
	}
	return c.repost(data, p)
}

func (c *planCommands) cmdChange(data *commands.Data) error {
	var title *string
	if v, ok := data.StringOption("title"); ok && v != "" && len(v) <= MaxTitleLength {
		title = &v
	}

	var spots *int
	if v, ok := data.IntOption("spots"); ok && v > 0 && v <= MaxSpots {
		spots = &v
	}

	t, ok, err := c.resolveTime(data)
	if !ok || err != nil {
		return err
	}

	p, err := c.repo.Change(data.GuildID, title, spots, t)
	if err != nil {
		return err
	}
	if p == nil {
		return replyStatus(data, StatusError, "", "Plan not created.")
	}
	return c.repost(data, p)
}

func (c *planCommands) cmdRename(data *commands.Data) error {
	title, _ := data.StringOption("title")

	p, err := c.repo.Rename(data.GuildID, title)
	if err != nil {
		return err
	}
	if p == nil {
		return replyStatus(data, StatusError, "", "Plan not created.")
	}
	return c.repost(data, p)
}

func (c *planCommands) cmdView(data *commands.Data) error {
	p, err := c.repo.Read(data.GuildID)
	if err != nil {
		return err
	}
	if p == nil {
		return replyStatus(data, StatusError, "", "Plan not created.")
	}
	return c.repost(data, p)
}

func (c *planCommands) cmdGather(data *commands.Data) error {
	p, err := c.repo.Read(data.GuildID)
	if err != nil {
		return err
	}
	if p == nil {
		return replyStatus(data, StatusError, "", "Plan not created.")
	}
	if len(p.Participants) == 0 {
		return replyStatus(data, StatusWarning, "", "Currently no participants to mention.")
	}

	mentions := make([]string, len(p.Participants))
	for i, participant := range p.Participants {
		mentions[i] = "<@!" + participant + ">"
	}

	return data.Reply(&commands.Response{
		Content: strings.Join(mentions, " "),
	})
}

func (c *planCommands) cmdTimezone(data *commands.Data) error {
	input, _ := data.StringOption("timezone")

	name := tzdir.ResolveName(input)
	if _, err := time.LoadLocation(name); err != nil {
		return replyStatus(data, StatusError, "",
			fmt.Sprintf("`%s` is not a valid timezone", input))
	}

	err := c.repo.SaveUserTz(data.User.ID, name)
	if err != nil {
		return err
	}

	return replyStatus(data, StatusSuccess, "Timezone Saved",
		fmt.Sprintf("Your timezone has been set to `%s`.\n `/plan time` option will now use your locale.\n\n**Example Time Inputs:**\n%s", name, timeExamples))
}

func (c *planCommands) autocompleteTimezone(data *commands.Data, input string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	matches := tzdir.Search(input)

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(matches))
	for i, match := range matches {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  match,
			Value: match,
		}
	}
	return choices, nil
}
