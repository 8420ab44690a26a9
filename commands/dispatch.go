package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandleInteractionCreate routes an interaction to the registered command that
// owns it: slash invocations by command name, autocompletes by focused option,
// button presses by custom id prefix.
func HandleInteractionCreate(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		handleCommand(s, ic)
	case discordgo.InteractionApplicationCommandAutocomplete:
		handleAutocomplete(s, ic)
	case discordgo.InteractionMessageComponent:
		handleComponent(s, ic)
	}
}

func handleCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	name := ic.ApplicationCommandData().Name
	cmd := Get(name)
	if cmd == nil {
		logger.Warn("received interaction for unknown command: ", name)
		return
	}

	data := newData(s, ic)
	logger.Infof("%s: %s issued the %s command", data.User.ID, data.User.Username, name)

	if err := cmd.RunFunc(data); err != nil {
		logger.WithError(err).WithField("cmd", name).Error("command failed")

		// best effort, the handler may already have responded
		data.Reply(&Response{
			Content:   "Something went wrong running that command.",
			Ephemeral: true,
		})
	}
}

func handleAutocomplete(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmdData := ic.ApplicationCommandData()
	cmd := Get(cmdData.Name)
	if cmd == nil || cmd.Autocomplete == nil {
		return
	}

	for _, opt := range cmdData.Options {
		if !opt.Focused {
			continue
		}

		handler, ok := cmd.Autocomplete[opt.Name]
		if !ok {
			return
		}

		input, _ := opt.Value.(string)
		choices, err := handler(newData(s, ic), input)
		if err != nil {
			logger.WithError(err).WithField("cmd", cmdData.Name).Error("autocomplete failed")
			return
		}

		err = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionApplicationCommandAutocompleteResult,
			Data: &discordgo.InteractionResponseData{Choices: choices},
		})
		if err != nil {
			logger.WithError(err).Error("failed responding to autocomplete")
		}
		return
	}
}

func handleComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	customID := ic.MessageComponentData().CustomID
	cmdName, action, ok := strings.Cut(customID, ":")
	if !ok {
		return
	}

	cmd := Get(cmdName)
	if cmd == nil || cmd.HandleButton == nil {
		return
	}

	data := &ButtonData{
		Session:     s,
		Interaction: ic,
		GuildID:     ic.GuildID,
		Action:      action,
	}
	if ic.Member != nil {
		data.User = ic.Member.User
	} else {
		data.User = ic.User
	}

	logger.Infof("%s: %s pressed the %q button from the %s command", data.User.ID, data.User.Username, action, cmdName)

	if err := cmd.HandleButton(data); err != nil {
		logger.WithError(err).WithField("cmd", cmdName).Error("button handler failed")
	}
}
