package commands

import (
	"emperror.dev/errors"
	"github.com/bwmarrin/discordgo"
)

// Response is what a handler sends back through the interaction, either as the
// initial reply, a message edit or a follow-up.
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

func (r *Response) flags() discordgo.MessageFlags {
	if r.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

// Data carries a single slash command invocation: identity, the typed option
// bag and the reply primitives.
type Data struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate

	GuildID string
	User    *discordgo.User

	options  map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

func newData(s *discordgo.Session, ic *discordgo.InteractionCreate) *Data {
	d := &Data{
		Session:     s,
		Interaction: ic,
		GuildID:     ic.GuildID,
		options:     make(map[string]*discordgo.ApplicationCommandInteractionDataOption),
	}

	if ic.Member != nil {
		d.User = ic.Member.User
	} else {
		d.User = ic.User
	}

	if ic.Type == discordgo.InteractionApplicationCommand || ic.Type == discordgo.InteractionApplicationCommandAutocomplete {
		cmdData := ic.ApplicationCommandData()
		d.resolved = cmdData.Resolved
		for _, opt := range cmdData.Options {
			d.options[opt.Name] = opt
		}
	}

	return d
}

// StringOption returns the value of a string option and whether it was supplied.
func (d *Data) StringOption(name string) (string, bool) {
	opt, ok := d.options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	return opt.StringValue(), true
}

// IntOption returns the value of an integer option and whether it was supplied.
func (d *Data) IntOption(name string) (int, bool) {
	opt, ok := d.options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return int(opt.IntValue()), true
}

// UserOption returns the user supplied for a user option, or nil when absent.
func (d *Data) UserOption(name string) *discordgo.User {
	opt, ok := d.options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil
	}

	id, _ := opt.Value.(string)
	if d.resolved != nil {
		if u, ok := d.resolved.Users[id]; ok {
			return u
		}
	}
	if id == "" {
		return nil
	}
	return &discordgo.User{ID: id}
}

// Reply sends the initial interaction response.
func (d *Data) Reply(r *Response) error {
	err := d.Session.InteractionRespond(d.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
			Flags:      r.flags(),
		},
	})
	return errors.WithStackIf(err)
}

// ReplyMessage fetches the message created by Reply, needed to record where the
// plan was last rendered.
func (d *Data) ReplyMessage() (*discordgo.Message, error) {
	m, err := d.Session.InteractionResponse(d.Interaction.Interaction)
	return m, errors.WithStackIf(err)
}

// ButtonData carries a button press routed back to the owning command.
type ButtonData struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate

	GuildID string
	User    *discordgo.User

	// Action is the part of the custom id after the command prefix.
	Action string
}

// Update edits the message the pressed button is attached to.
func (d *ButtonData) Update(r *Response) error {
	err := d.Session.InteractionRespond(d.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
		},
	})
	return errors.WithStackIf(err)
}

// FollowUp posts an additional message after Update, returning the created
// message.
func (d *ButtonData) FollowUp(r *Response) (*discordgo.Message, error) {
	m, err := d.Session.FollowupMessageCreate(d.Interaction.Interaction, true, &discordgo.WebhookParams{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
		Flags:      r.flags(),
	})
	return m, errors.WithStackIf(err)
}
