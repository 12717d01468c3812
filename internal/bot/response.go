package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Response is what a command handler produces. Most responses are
// ephemeral: announcements go to the configured channel, command
// feedback stays between the bot and the invoking user
type Response struct {
	Content   string
	Embed     *discordgo.MessageEmbed
	Ephemeral bool
}

func (response Response) send(session *discordgo.Session, interaction *discordgo.InteractionCreate) {

	data := &discordgo.InteractionResponseData{Content: response.Content}
	if response.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{response.Embed}
	}
	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not respond to interaction: %v", err))
	}
}
