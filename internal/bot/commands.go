package bot

import (
	"warbornebot/internal/store"

	"github.com/bwmarrin/discordgo"
)

func dayChoices(withEveryday bool) []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, day := range store.Days {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: day, Value: day})
	}
	if withEveryday {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: store.Everyday, Value: store.Everyday})
	}
	return choices
}

func minValue(v float64) *float64 { return &v }

// commands is the full slash-command surface registered for the guild
// at startup
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "wb-schedule",
		Description: "View or manage the weekly event schedule",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "view",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "View the weekly schedule",
			},
			{
				Name:        "add",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Add an event to a specific day",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "day", Type: discordgo.ApplicationCommandOptionString, Description: "Day of the week, or Everyday for daily events", Required: true, Choices: dayChoices(true)},
					{Name: "name", Type: discordgo.ApplicationCommandOptionString, Description: "Event name", Required: true},
					{Name: "times", Type: discordgo.ApplicationCommandOptionString, Description: "Comma-separated times, e.g. \"6:00 PM, 21:30\" (CST)", Required: false},
					{Name: "description", Type: discordgo.ApplicationCommandOptionString, Description: "Event description", Required: false},
				},
			},
			{
				Name:        "remove",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Remove an event from a specific day",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "day", Type: discordgo.ApplicationCommandOptionString, Description: "Day of the week", Required: true, Choices: dayChoices(true)},
					{Name: "number", Type: discordgo.ApplicationCommandOptionInteger, Description: "Event number to remove (see /wb-schedule view)", Required: true, MinValue: minValue(1)},
				},
			},
		},
	},
	{
		Name:        "wb-reminder",
		Description: "Manage your reminders",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Create a new reminder",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "description", Type: discordgo.ApplicationCommandOptionString, Description: "What is this reminder for?", Required: true},
					{Name: "days", Type: discordgo.ApplicationCommandOptionInteger, Description: "Number of days", Required: true, MinValue: minValue(0)},
					{Name: "hours", Type: discordgo.ApplicationCommandOptionInteger, Description: "Number of hours", Required: true, MinValue: minValue(0), MaxValue: 23},
					{Name: "minutes", Type: discordgo.ApplicationCommandOptionInteger, Description: "Number of minutes", Required: true, MinValue: minValue(0), MaxValue: 59},
					{Name: "seconds", Type: discordgo.ApplicationCommandOptionInteger, Description: "Number of seconds", Required: true, MinValue: minValue(0), MaxValue: 59},
					{Name: "mention1", Type: discordgo.ApplicationCommandOptionMentionable, Description: "Additional user/role to mention (you are always mentioned)", Required: false},
					{Name: "mention2", Type: discordgo.ApplicationCommandOptionMentionable, Description: "Additional user/role to mention", Required: false},
					{Name: "mention3", Type: discordgo.ApplicationCommandOptionMentionable, Description: "Additional user/role to mention", Required: false},
					{Name: "mention_everyone", Type: discordgo.ApplicationCommandOptionBoolean, Description: "Mention @everyone", Required: false},
				},
			},
			{
				Name:        "view",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "View all your active reminders",
			},
			{
				Name:        "remove",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Remove a reminder by number",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "number", Type: discordgo.ApplicationCommandOptionInteger, Description: "The reminder number (see /wb-reminder view)", Required: true, MinValue: minValue(1)},
				},
			},
		},
	},
	{
		Name:        "wb-faq",
		Description: "View or manage frequently asked questions",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "view",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "View all FAQs",
			},
			{
				Name:        "add",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Add a new FAQ",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "question", Type: discordgo.ApplicationCommandOptionString, Description: "The FAQ question", Required: true},
					{Name: "answer", Type: discordgo.ApplicationCommandOptionString, Description: "The FAQ answer", Required: true},
				},
			},
			{
				Name:        "remove",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Remove an FAQ by number",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "number", Type: discordgo.ApplicationCommandOptionInteger, Description: "The number of the FAQ to remove", Required: true, MinValue: minValue(1)},
				},
			},
			{
				Name:        "search",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Search FAQs by keyword",
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "keyword", Type: discordgo.ApplicationCommandOptionString, Description: "Keyword to search for in questions and answers", Required: true},
				},
			},
		},
	},
}
