package schedule

import (
	"fmt"
	"sync"

	"warbornebot/internal/store"
	"warbornebot/internal/timeutil"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Notifier is the announcement channel sink
type Notifier interface {
	Send(channelID string, content string) error
	ChannelExists(channelID string) bool
}

// Scheduler owns the recurring triggers derived from the schedule
// document. There is no incremental edit: every mutation of the
// document goes through a full Install, which clears all previously
// installed triggers and derives the set from scratch. Reinstalling
// is cheap and idempotent, which keeps the document the single source
// of truth
type Scheduler struct {
	cron      *cron.Cron
	notifier  Notifier
	channelID string
	mutex     sync.Mutex
	installed []cron.EntryID
}

func NewScheduler(notifier Notifier, channelID string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(timeutil.Location())),
		notifier:  notifier,
		channelID: channelID,
	}
}

// Start begins evaluating the installed triggers
func (scheduler *Scheduler) Start() {
	scheduler.cron.Start()
}

// Stop halts the cron runner. Already-running firings finish
func (scheduler *Scheduler) Stop() {
	scheduler.cron.Stop()
}

// Install replaces every previously installed trigger with the set
// derived from the given schedule. Returns the number of installed
// triggers
func (scheduler *Scheduler) Install(schedule store.Schedule) int {

	scheduler.mutex.Lock()
	defer scheduler.mutex.Unlock()

	for _, id := range scheduler.installed {
		scheduler.cron.Remove(id)
	}
	scheduler.installed = scheduler.installed[:0]

	for _, trigger := range BuildTriggers(schedule) {
		trigger := trigger
		id, err := scheduler.cron.AddFunc(trigger.Spec, func() { scheduler.fire(trigger) })
		if err != nil {
			log.Warn().Msg(fmt.Sprintf("Skipping trigger %q for event %s: %v", trigger.Spec, trigger.Event.Name, err))
			continue
		}
		scheduler.installed = append(scheduler.installed, id)
	}

	log.Info().Msg(fmt.Sprintf("Installed %d event trigger(s)", len(scheduler.installed)))
	return len(scheduler.installed)
}

// Installed returns the number of currently installed triggers
func (scheduler *Scheduler) Installed() int {
	scheduler.mutex.Lock()
	defer scheduler.mutex.Unlock()
	return len(scheduler.installed)
}

// AddDaily registers a job at the given community wall-clock time,
// outside the set that Install clears. Used for the daily digest
func (scheduler *Scheduler) AddDaily(hour, minute int, job func()) error {
	_, err := scheduler.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), job)
	return err
}

func (scheduler *Scheduler) fire(trigger Trigger) {

	if !scheduler.notifier.ChannelExists(scheduler.channelID) {
		log.Warn().Msg(fmt.Sprintf("Could not find announcement channel %s, skipping notification for event %s", scheduler.channelID, trigger.Event.Name))
		return
	}
	if err := scheduler.notifier.Send(scheduler.channelID, FormatNotification(trigger)); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not send notification for event %s: %v", trigger.Event.Name, err))
		return
	}
	kind := "start"
	if trigger.Reminder {
		kind = "reminder"
	}
	log.Info().Msg(fmt.Sprintf("Sent %s notification for event %s", kind, trigger.Event.Name))
}
