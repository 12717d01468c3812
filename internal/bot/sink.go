package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Sink sends plain messages to a channel by id. It backs the Notifier
// interfaces of the reminder engine and the event scheduler, which
// never assume the announcement channel equals whatever channel a
// command came from
type Sink struct {
	session *discordgo.Session
}

func NewSink(session *discordgo.Session) *Sink {
	return &Sink{session: session}
}

func (sink *Sink) Send(channelID string, content string) error {
	_, err := sink.session.ChannelMessageSend(channelID, content)
	return err
}

func (sink *Sink) ChannelExists(channelID string) bool {
	if _, err := sink.session.State.Channel(channelID); err == nil {
		return true
	}
	_, err := sink.session.Channel(channelID)
	return err == nil
}
