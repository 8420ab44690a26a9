package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"github.com/chis-dev/chisbot/commands"
)

const (
	colorPlan    = 0x9b59b6
	colorError   = 0xed4245
	colorWarning = 0xfee75c
	colorInfo    = 0x3498db
	colorSuccess = 0x57f287
)

// PlanEmbed renders the plan summary: title with an optional local-time tag,
// the numbered roster and a command hint.
func PlanEmbed(p *Plan) *discordgo.MessageEmbed {
	mention := "No one has joined the plan."
	if len(p.Participants) > 0 {
		lines := make([]string, len(p.Participants))
		for i, participant := range p.Participants {
			lines[i] = fmt.Sprintf("%d. <@!%s>", i+1, participant)
		}
		mention = strings.Join(lines, "\n")
	}

	title := p.Title
	description := ""
	if p.Time != nil {
		title += fmt.Sprintf(" @ <t:%d:t>", p.Time.Unix())
		description = "Starts " + humanize.Time(*p.Time)
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorPlan,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("Participants (%d/%d)", len(p.Participants), p.Spots),
				Value: mention,
			},
			{
				Name:  "Slash Commands",
				Value: "/join, /leave, /change, /view, /gather",
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

type StatusLevel int

const (
	StatusError StatusLevel = iota
	StatusWarning
	StatusInfo
	StatusSuccess
)

func (l StatusLevel) color() int {
	switch l {
	case StatusError:
		return colorError
	case StatusWarning:
		return colorWarning
	case StatusInfo:
		return colorInfo
	default:
		return colorSuccess
	}
}

func (l StatusLevel) defaultTitle() (emoji, title string) {
	switch l {
	case StatusError:
		return ":no_entry_sign:", "Error"
	case StatusWarning:
		return ":warning:", "Warning"
	case StatusInfo:
		return ":information_source:", "Information"
	default:
		return ":white_check_mark:", "Success"
	}
}

// StatusEmbed renders a severity-tagged status message. An empty title uses
// the level's default.
func StatusEmbed(level StatusLevel, title, message string) *discordgo.MessageEmbed {
	emoji, fallback := level.defaultTitle()
	if title == "" {
		title = fallback
	}

	return &discordgo.MessageEmbed{
		Title:       emoji + " " + title,
		Description: message,
		Color:       level.color(),
	}
}

// ConfirmButtons is the yes/no row attached to an overwrite prompt.
func ConfirmButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes",
					Style:    discordgo.PrimaryButton,
					CustomID: commands.ButtonCustomID("plan", "yes"),
				},
				discordgo.Button{
					Label:    "No",
					Style:    discordgo.DangerButton,
					CustomID: commands.ButtonCustomID("plan", "no"),
				},
			},
		},
	}
}
