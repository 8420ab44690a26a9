package plan

import (
	"github.com/bwmarrin/discordgo"
)

// MessageProvider abstracts fetching and deleting rendered plan messages.
// Fetch failures of any kind are reported as absence, transport errors are
// never escalated to command handlers.
type MessageProvider interface {
	Message(channelID, messageID string) (*discordgo.Message, bool)
	DeleteMessage(channelID, messageID string) error
}

type sessionMessages struct {
	session *discordgo.Session
}

func NewSessionMessages(session *discordgo.Session) MessageProvider {
	return &sessionMessages{session: session}
}

func (m *sessionMessages) Message(channelID, messageID string) (*discordgo.Message, bool) {
	if channelID == "" || messageID == "" {
		return nil, false
	}

	msg, err := m.session.ChannelMessage(channelID, messageID)
	if err != nil {
		logger.WithError(err).Error("failed fetching plan message")
		return nil, false
	}
	return msg, true
}

func (m *sessionMessages) DeleteMessage(channelID, messageID string) error {
	return m.session.ChannelMessageDelete(channelID, messageID)
}

// deleteRendered removes the plan's bound message when it is still there.
// A missing message or a failed delete is logged and otherwise ignored.
func deleteRendered(messages MessageProvider, p *Plan) {
	if p == nil {
		return
	}

	_, ok := messages.Message(p.ChannelID, p.MessageID)
	if !ok {
		return
	}

	err := messages.DeleteMessage(p.ChannelID, p.MessageID)
	if err != nil {
		logger.WithError(err).Error("failed deleting previous plan message")
	}
}
