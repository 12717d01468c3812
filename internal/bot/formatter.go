package bot

import (
	"fmt"
	"strings"
	"time"

	"warbornebot/internal/store"

	"github.com/bwmarrin/discordgo"
)

// Use "teal" color for the bot
const color int = 0x008080

var dayEmojis = map[string]string{
	"Sunday":    "♻️",
	"Monday":    "🏆",
	"Tuesday":   "⚡",
	"Wednesday": "📈",
	"Thursday":  "☢️",
	"Friday":    "⚔️",
	"Saturday":  "🥩",
	"Everyday":  "📅",
}

func PermissionDenied() Response {
	return Response{Content: "❌ **Permission Denied**\nYou need administrator permissions to do that.", Ephemeral: true}
}

func OperatorError() Response {
	return Response{Content: "❌ Something went wrong on my side, please ping an operator.", Ephemeral: true}
}

// Schedule

func ScheduleView(schedule store.Schedule) Response {

	days := append(append([]string{}, store.Days...), store.Everyday)
	sections := make([]string, 0, len(days))
	for _, day := range days {
		events := schedule[day]
		if day == store.Everyday && len(events) == 0 {
			continue
		}
		section := fmt.Sprintf("%s **%s**\n", dayEmojis[day], day)
		if len(events) == 0 {
			section += "   • _No events scheduled_"
		} else {
			lines := make([]string, 0, len(events))
			for i, event := range events {
				line := fmt.Sprintf("   **%d.** %s", i+1, event.Name)
				if len(event.Times) > 0 {
					line += fmt.Sprintf(" — %s CST", strings.Join(event.Times, ", "))
				}
				if event.Description != "" {
					line += fmt.Sprintf("\n      _%s_", event.Description)
				}
				lines = append(lines, line)
			}
			section += strings.Join(lines, "\n")
		}
		sections = append(sections, section)
	}

	content := "📅 **Weekly Event Schedule**\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		strings.Join(sections, "\n\n") +
		"\n\n💡 *Use `/wb-schedule add` to add events*"
	return Response{Content: content, Ephemeral: true}
}

func EventAdded(day string, event store.Event) Response {
	content := fmt.Sprintf("✅ **Event Added Successfully!**\n━━━━━━━━━━━━━━━━━━━━\n📅 **%s**\n📝 **Event:** %s\n", day, event.Name)
	if len(event.Times) > 0 {
		content += fmt.Sprintf("🕒 **Times:** %s CST\n", strings.Join(event.Times, ", "))
	}
	content += "\nThe schedule has been updated."
	return Response{Content: content, Ephemeral: true}
}

func EventRemoved(day string, number int) Response {
	return Response{
		Content:   fmt.Sprintf("✅ **Event Removed Successfully!**\n━━━━━━━━━━━━━━━━━━━━━━━\n🗑️ Removed event #%d from **%s**\n\nThe schedule has been updated.", number, day),
		Ephemeral: true,
	}
}

func NoEventsForDay(day string) Response {
	return Response{Content: fmt.Sprintf("❌ **No Events Found**\n📅 **%s** has no scheduled events.", day), Ephemeral: true}
}

func InvalidEventNumber(day string, count int) Response {
	return Response{
		Content:   fmt.Sprintf("❌ **Invalid Event Number**\n📅 **%s** has **%d** event(s).\nPlease choose a number between 1 and %d.", day, count, count),
		Ephemeral: true,
	}
}

// InvalidTimes reports every bad time token of a batch at once, so
// the user fixes the whole input in one go
func InvalidTimes(tokens []string) Response {
	return Response{
		Content:   fmt.Sprintf("❌ **Invalid Time(s)**\nCould not understand: `%s`\nUse formats like `6:00 PM` or `18:30`.", strings.Join(tokens, "`, `")),
		Ephemeral: true,
	}
}

// Reminders

func ReminderDelayOutOfRange(zero bool) Response {
	if zero {
		return Response{Content: "❌ **Invalid Time**\n⏱️ Please specify at least some time for the reminder!", Ephemeral: true}
	}
	return Response{Content: "❌ **Time Limit Exceeded**\n⏱️ Maximum reminder time is **30 days**", Ephemeral: true}
}

func ReminderCreated(reminder store.Reminder, timeString string) Response {
	embed := &discordgo.MessageEmbed{
		Title:       "⏰ Reminder Set Successfully!",
		Description: fmt.Sprintf("📢 **I'll remind you about:**\n> %s", reminder.Description),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Reminder Time", Value: discordTimestamp(reminder.TriggerAt), Inline: false},
			{Name: "⏱️ Time Until Reminder", Value: "🕒 " + timeString, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "You will be mentioned when the time is up!"},
	}
	content := fmt.Sprintf("✅ **Reminder Created!**\n━━━━━━━━━━━━━━━━━━━━\n⏰ **Time:** %s\n📢 **Reminder:** %s", timeString, reminder.Description)
	return Response{Content: content, Embed: embed, Ephemeral: true}
}

func NoReminders() Response {
	return Response{Content: "📭 **No Active Reminders**\n\nYou don't have any active reminders.", Ephemeral: true}
}

func ReminderList(reminders []store.Reminder) Response {

	embed := &discordgo.MessageEmbed{
		Title:       "⏰ Your Active Reminders",
		Description: fmt.Sprintf("You have **%d** active reminder(s)", len(reminders)),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use /wb-reminder add to create one or /wb-reminder remove to delete one"},
	}
	for i, reminder := range reminders {
		remaining := time.Until(time.UnixMilli(reminder.TriggerAt))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s", i+1, reminder.Description),
			Value:  fmt.Sprintf("⏱️ **In:** %s\n📅 **When:** %s", formatDuration(remaining), discordTimestamp(reminder.TriggerAt)),
			Inline: false,
		})
	}
	return Response{Embed: embed, Ephemeral: true}
}

func InvalidReminderNumber(count int) Response {
	return Response{
		Content:   fmt.Sprintf("❌ **Invalid Reminder Number**\n\nPlease enter a number between 1 and %d.\nUse `/wb-reminder view` to see your active reminders.", count),
		Ephemeral: true,
	}
}

func ReminderCancelled(description string) Response {
	return Response{Content: fmt.Sprintf("✅ **Reminder Removed**\n🗑️ %s", description), Ephemeral: true}
}

func ReminderNotYours() Response {
	return Response{Content: "❌ You can only remove your own reminders.", Ephemeral: true}
}

func ReminderGone() Response {
	return Response{Content: "❌ That reminder no longer exists, it may have fired already.", Ephemeral: true}
}

// FAQ

func FAQList(entries []store.FAQ) Response {

	if len(entries) == 0 {
		return Response{Content: "❌ No FAQs found.", Ephemeral: true}
	}
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("**%d.** 💬 **%s**\n   ➡️ %s", i+1, entry.Question, entry.Answer))
	}
	content := fmt.Sprintf(
		"📚 **Frequently Asked Questions**\n━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n%s\n\n━━━━━━━━━━━━━━━━━━━━━━━━━━\nTotal: **%d** FAQs\n💡 *Use `/wb-faq add` to contribute!*",
		strings.Join(lines, "\n\n"), len(entries))
	return Response{Content: content}
}

func FAQAdded(entry store.FAQ) Response {
	return Response{Content: fmt.Sprintf("✅ **FAQ Added!**\n💬 **Q:** %s\n➡️ **A:** %s", entry.Question, entry.Answer), Ephemeral: true}
}

func FAQRemoved(number int, entry store.FAQ) Response {
	return Response{Content: fmt.Sprintf("✅ **FAQ Removed**\n🗑️ #%d: %s", number, entry.Question), Ephemeral: true}
}

func InvalidFAQNumber(count int) Response {
	return Response{Content: fmt.Sprintf("❌ **Invalid FAQ Number**\nPlease choose a number between 1 and %d.", count), Ephemeral: true}
}

func FAQSearchResults(keyword string, matches []store.FAQMatch) Response {

	if len(matches) == 0 {
		return Response{Content: fmt.Sprintf("ℹ️ No FAQ items found containing \"%s\".", keyword), Ephemeral: true}
	}
	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		lines = append(lines, fmt.Sprintf("**%d. Q:** %s\n**A:** %s", match.Index, match.Entry.Question, match.Entry.Answer))
	}
	return Response{Content: fmt.Sprintf("🔍 **FAQ Search Results for \"%s\":**\n\n%s", keyword, strings.Join(lines, "\n\n"))}
}

// Helpers

func discordTimestamp(unixMilli int64) string {
	return fmt.Sprintf("<t:%d:F>", unixMilli/1000)
}

func formatDuration(d time.Duration) string {

	if d < time.Minute {
		return "Less than 1m"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}
