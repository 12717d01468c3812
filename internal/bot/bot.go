package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"warbornebot/internal/github"
	"warbornebot/internal/reminder"
	"warbornebot/internal/schedule"
	"warbornebot/internal/store"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Bot wires the command surface to the documents and the scheduling
// engines. The documents on disk are the source of truth: every
// handler goes read-modify-write through the store, then pokes the
// engine or scheduler to re-arm and the syncer to mirror
type Bot struct {
	session       *discordgo.Session
	applicationID string
	guildID       string

	scheduleDoc *store.Document[store.Schedule]
	faqDoc      *store.Document[[]store.FAQ]
	engine      *reminder.Engine
	scheduler   *schedule.Scheduler
	syncer      *github.Syncer
}

func NewBot(
	session *discordgo.Session,
	applicationID string,
	guildID string,
	scheduleDoc *store.Document[store.Schedule],
	faqDoc *store.Document[[]store.FAQ],
	engine *reminder.Engine,
	scheduler *schedule.Scheduler,
	syncer *github.Syncer,
) *Bot {
	return &Bot{
		session:       session,
		applicationID: applicationID,
		guildID:       guildID,
		scheduleDoc:   scheduleDoc,
		faqDoc:        faqDoc,
		engine:        engine,
		scheduler:     scheduler,
		syncer:        syncer,
	}
}

// Run opens the gateway session, registers the slash commands, arms
// everything from persisted state and blocks until the process is
// interrupted. Shutdown stops the cron runner and flushes pending
// mirror syncs before closing the session
func (bot *Bot) Run() error {

	bot.session.Identify.Intents = discordgo.IntentsGuilds
	bot.session.AddHandler(bot.HandleInteraction)

	if err := bot.session.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer bot.session.Close()

	if _, err := bot.session.ApplicationCommandBulkOverwrite(bot.applicationID, bot.guildID, commands); err != nil {
		return fmt.Errorf("could not register slash commands: %w", err)
	}
	log.Info().Msg(fmt.Sprintf("Registered %d slash command(s) for guild %s", len(commands), bot.guildID))

	// Reconstruct in-memory timers from the persisted documents
	if err := bot.engine.ReArmAll(); err != nil {
		return fmt.Errorf("could not re-arm reminders: %w", err)
	}
	sched, err := bot.scheduleDoc.Load()
	if err != nil {
		return fmt.Errorf("could not load schedule: %w", err)
	}
	bot.scheduler.Install(sched)
	bot.scheduler.Start()

	log.Info().Msg("Bot is running, press ctrl+C to exit")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	log.Info().Msg("Shutting down")
	bot.scheduler.Stop()
	bot.syncer.Flush()
	return nil
}
