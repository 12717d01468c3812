package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"warbornebot/internal/bot"
	"warbornebot/internal/config"
	"warbornebot/internal/github"
	"warbornebot/internal/reminder"
	"warbornebot/internal/schedule"
	"warbornebot/internal/store"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(fmt.Sprintf("Could not load configuration: %v", err))
	}

	// Open the documents. A document that exists but does not parse
	// refuses to start the bot: reinitialising it silently would throw
	// user data away, recovering the file is an operator job
	scheduleDoc, err := store.OpenSchedule(filepath.Join(cfg.DataDir, "schedule.json"))
	if err != nil {
		log.Fatal().Msg(fmt.Sprintf("Could not open schedule document: %v", err))
	}
	remindersDoc := store.NewDocument(filepath.Join(cfg.DataDir, "reminders.json"), store.DefaultReminders)
	if _, err := remindersDoc.Load(); err != nil {
		log.Fatal().Msg(fmt.Sprintf("Could not open reminders document: %v", err))
	}
	faqDoc := store.NewDocument(filepath.Join(cfg.DataDir, "faq.json"), store.DefaultFAQ)
	if _, err := faqDoc.Load(); err != nil {
		log.Fatal().Msg(fmt.Sprintf("Could not open FAQ document: %v", err))
	}

	// Remote mirror, best effort
	mirror := github.NewMirror(cfg.GithubToken, cfg.GithubRepo, cfg.GithubUser, cfg.GithubBranch)
	if !mirror.Enabled() {
		log.Warn().Msg("Remote mirror is not configured, documents stay local only")
	}
	syncer := github.NewSyncer(mirror)

	// Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal().Msg(fmt.Sprintf("Could not create discord session: %v", err))
	}
	sink := bot.NewSink(session)

	// Scheduling engines
	engine := reminder.NewEngine(remindersDoc, sink, func() {
		syncer.Schedule(remindersDoc.Filename(), remindersDoc.Bytes, "Update reminders via WarborneBot")
	})
	scheduler := schedule.NewScheduler(sink, cfg.AnnounceChannelID)
	digest := schedule.NewDigest(scheduleDoc, sink, cfg.AnnounceChannelID)
	if err := digest.Attach(scheduler); err != nil {
		log.Fatal().Msg(fmt.Sprintf("Could not schedule the daily digest: %v", err))
	}

	warborne := bot.NewBot(session, cfg.ApplicationID, cfg.GuildID, scheduleDoc, faqDoc, engine, scheduler, syncer)
	if err := warborne.Run(); err != nil {
		log.Fatal().Msg(fmt.Sprintf("Bot stopped with error: %v", err))
	}
}
