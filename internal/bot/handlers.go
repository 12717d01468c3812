package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warbornebot/internal/reminder"
	"warbornebot/internal/store"
	"warbornebot/internal/timeutil"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// HandleInteraction dispatches a slash command to its handler
func (bot *Bot) HandleInteraction(session *discordgo.Session, interaction *discordgo.InteractionCreate) {

	if interaction.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := interaction.ApplicationCommandData()
	log.Debug().Msg(fmt.Sprintf("Received command %s from user %s", data.Name, invokerID(interaction)))

	var response Response
	switch data.Name {
	case "wb-schedule":
		response = bot.handleSchedule(interaction, data)
	case "wb-reminder":
		response = bot.handleReminder(interaction, data)
	case "wb-faq":
		response = bot.handleFAQ(interaction, data)
	default:
		log.Warn().Msg(fmt.Sprintf("Received unknown command %s", data.Name))
		return
	}
	response.send(session, interaction)
}

// Schedule

func (bot *Bot) handleSchedule(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) Response {

	sub, opts := subcommand(data)
	switch sub {
	case "view":
		schedule, err := bot.scheduleDoc.Load()
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not load schedule: %v", err))
			return OperatorError()
		}
		return ScheduleView(schedule)

	case "add":
		if !isAdmin(interaction) {
			return PermissionDenied()
		}
		day := opts["day"].StringValue()
		if !store.ValidDay(day) {
			return Response{Content: fmt.Sprintf("❌ `%s` is not a day of the week.", day), Ephemeral: true}
		}
		event := store.Event{Name: opts["name"].StringValue(), Times: []string{}}
		if opt, ok := opts["description"]; ok {
			event.Description = opt.StringValue()
		}

		// Validate the whole batch of times and report every bad
		// token together, deduplicating equivalent spellings
		if opt, ok := opts["times"]; ok {
			var invalid []string
			seen := map[string]struct{}{}
			for _, token := range strings.Split(opt.StringValue(), ",") {
				token = strings.TrimSpace(token)
				if token == "" {
					continue
				}
				canonical, ok := timeutil.Canonicalize(token)
				if !ok {
					invalid = append(invalid, token)
					continue
				}
				if _, dup := seen[canonical]; dup {
					continue
				}
				seen[canonical] = struct{}{}
				event.Times = append(event.Times, canonical)
			}
			if len(invalid) > 0 {
				return InvalidTimes(invalid)
			}
		}

		err := bot.scheduleDoc.Update(func(schedule store.Schedule) (store.Schedule, error) {
			schedule[day] = append(schedule[day], event)
			return schedule, nil
		})
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not add event to %s: %v", day, err))
			return OperatorError()
		}
		bot.afterScheduleChange(fmt.Sprintf("Add event to %s", day))
		return EventAdded(day, event)

	case "remove":
		if !isAdmin(interaction) {
			return PermissionDenied()
		}
		day := opts["day"].StringValue()
		number := int(opts["number"].IntValue())

		var count int
		err := bot.scheduleDoc.Update(func(schedule store.Schedule) (store.Schedule, error) {
			events := schedule[day]
			count = len(events)
			if number < 1 || number > len(events) {
				return nil, errOutOfRange
			}
			schedule[day] = append(events[:number-1], events[number:]...)
			return schedule, nil
		})
		if errors.Is(err, errOutOfRange) {
			if count == 0 {
				return NoEventsForDay(day)
			}
			return InvalidEventNumber(day, count)
		}
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not remove event from %s: %v", day, err))
			return OperatorError()
		}
		bot.afterScheduleChange(fmt.Sprintf("Remove event from %s", day))
		return EventRemoved(day, number)
	}
	return OperatorError()
}

// afterScheduleChange reinstalls every recurring trigger from the
// mutated document and schedules a mirror sync. Reinstalling from
// scratch keeps the document the single source of truth
func (bot *Bot) afterScheduleChange(commit string) {
	schedule, err := bot.scheduleDoc.Load()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not reload schedule after mutation: %v", err))
		return
	}
	bot.scheduler.Install(schedule)
	bot.syncer.Schedule(bot.scheduleDoc.Filename(), bot.scheduleDoc.Bytes, commit)
}

// Reminders

func (bot *Bot) handleReminder(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) Response {

	userID := invokerID(interaction)
	sub, opts := subcommand(data)
	switch sub {
	case "add":
		delay := time.Duration(opts["days"].IntValue())*24*time.Hour +
			time.Duration(opts["hours"].IntValue())*time.Hour +
			time.Duration(opts["minutes"].IntValue())*time.Minute +
			time.Duration(opts["seconds"].IntValue())*time.Second

		everyone := false
		if opt, ok := opts["mention_everyone"]; ok {
			everyone = opt.BoolValue()
		}

		// The creator is always mentioned first
		mentions := []string{fmt.Sprintf("<@%s>", userID)}
		for _, name := range []string{"mention1", "mention2", "mention3"} {
			opt, ok := opts[name]
			if !ok {
				continue
			}
			token := mentionToken(data, opt.Value.(string))
			if token != "" && token != mentions[0] {
				mentions = append(mentions, token)
			}
		}

		created, err := bot.engine.Create(userID, interaction.ChannelID, opts["description"].StringValue(), delay, mentions, everyone)
		if errors.Is(err, reminder.ErrDelayOutOfRange) {
			return ReminderDelayOutOfRange(delay <= 0)
		}
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not create reminder: %v", err))
			return OperatorError()
		}
		return ReminderCreated(created, formatDuration(delay))

	case "view":
		mine, err := bot.engine.ListForUser(userID)
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not list reminders: %v", err))
			return OperatorError()
		}
		if len(mine) == 0 {
			return NoReminders()
		}
		return ReminderList(mine)

	case "remove":
		number := int(opts["number"].IntValue())
		mine, err := bot.engine.ListForUser(userID)
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not list reminders: %v", err))
			return OperatorError()
		}
		if len(mine) == 0 {
			return NoReminders()
		}
		if number < 1 || number > len(mine) {
			return InvalidReminderNumber(len(mine))
		}
		target := mine[number-1]
		switch err := bot.engine.Cancel(target.ID, userID); {
		case errors.Is(err, reminder.ErrForbidden):
			return ReminderNotYours()
		case errors.Is(err, reminder.ErrNotFound):
			return ReminderGone()
		case err != nil:
			log.Error().Msg(fmt.Sprintf("Could not cancel reminder %s: %v", target.ID, err))
			return OperatorError()
		}
		return ReminderCancelled(target.Description)
	}
	return OperatorError()
}

// FAQ

func (bot *Bot) handleFAQ(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) Response {

	sub, opts := subcommand(data)
	switch sub {
	case "view":
		entries, err := bot.faqDoc.Load()
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not load FAQs: %v", err))
			return OperatorError()
		}
		return FAQList(entries)

	case "add":
		if !isAdmin(interaction) {
			return PermissionDenied()
		}
		entry := store.FAQ{Question: opts["question"].StringValue(), Answer: opts["answer"].StringValue()}
		err := bot.faqDoc.Update(func(entries []store.FAQ) ([]store.FAQ, error) {
			return append(entries, entry), nil
		})
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not add FAQ: %v", err))
			return OperatorError()
		}
		bot.syncer.Schedule(bot.faqDoc.Filename(), bot.faqDoc.Bytes, "Add FAQ entry")
		return FAQAdded(entry)

	case "remove":
		if !isAdmin(interaction) {
			return PermissionDenied()
		}
		number := int(opts["number"].IntValue())
		var count int
		var removed store.FAQ
		err := bot.faqDoc.Update(func(entries []store.FAQ) ([]store.FAQ, error) {
			count = len(entries)
			if number < 1 || number > len(entries) {
				return nil, errOutOfRange
			}
			removed = entries[number-1]
			return append(entries[:number-1], entries[number:]...), nil
		})
		if errors.Is(err, errOutOfRange) {
			return InvalidFAQNumber(count)
		}
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not remove FAQ: %v", err))
			return OperatorError()
		}
		bot.syncer.Schedule(bot.faqDoc.Filename(), bot.faqDoc.Bytes, "Remove FAQ entry")
		return FAQRemoved(number, removed)

	case "search":
		entries, err := bot.faqDoc.Load()
		if err != nil {
			log.Error().Msg(fmt.Sprintf("Could not load FAQs: %v", err))
			return OperatorError()
		}
		keyword := opts["keyword"].StringValue()
		return FAQSearchResults(keyword, store.SearchFAQ(entries, keyword))
	}
	return OperatorError()
}

// Helpers

var errOutOfRange = errors.New("index out of range")

func subcommand(data discordgo.ApplicationCommandInteractionData) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {

	if len(data.Options) == 0 {
		return "", nil
	}
	sub := data.Options[0]
	opts := map[string]*discordgo.ApplicationCommandInteractionDataOption{}
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}
	return sub.Name, opts
}

func invokerID(interaction *discordgo.InteractionCreate) string {
	if interaction.Member != nil {
		return interaction.Member.User.ID
	}
	return interaction.User.ID
}

func isAdmin(interaction *discordgo.InteractionCreate) bool {
	return interaction.Member != nil && interaction.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// mentionToken renders a resolved mentionable option as the matching
// mention: roles as <@&id>, users as <@id>
func mentionToken(data discordgo.ApplicationCommandInteractionData, id string) string {
	if data.Resolved != nil {
		if _, ok := data.Resolved.Roles[id]; ok {
			return fmt.Sprintf("<@&%s>", id)
		}
	}
	return fmt.Sprintf("<@%s>", id)
}
