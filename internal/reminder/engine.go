package reminder

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"warbornebot/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxDelay caps how far in the future a reminder can be set
const MaxDelay = 30 * 24 * time.Hour

var (
	ErrNotFound        = errors.New("reminder not found")
	ErrForbidden       = errors.New("reminder belongs to somebody else")
	ErrDelayOutOfRange = errors.New("delay must be positive and at most 30 days")
)

// Notifier is the channel message sink. The bot backs it with the
// discord session, tests back it with a fake
type Notifier interface {
	Send(channelID string, content string) error
	ChannelExists(channelID string) bool
}

// Engine owns the one-shot reminder timers. Reminders are written to
// the document before a timer is armed, so a crash between the two
// loses at most a timer, which ReArmAll reconstructs on the next start
type Engine struct {
	doc      *store.Document[[]store.Reminder]
	notifier Notifier
	mutex    sync.Mutex
	timers   map[string]*time.Timer
	onChange func() // hook for the debounced mirror sync, may be nil
}

func NewEngine(doc *store.Document[[]store.Reminder], notifier Notifier, onChange func()) *Engine {
	return &Engine{doc: doc, notifier: notifier, timers: map[string]*time.Timer{}, onChange: onChange}
}

// Create validates, persists and arms a new reminder. Mentions are
// ready-made mention tokens with the creator first; everyone replaces
// them with an @everyone ping
func (engine *Engine) Create(userID, channelID, description string, delay time.Duration, mentions []string, everyone bool) (store.Reminder, error) {

	if delay <= 0 || delay > MaxDelay {
		return store.Reminder{}, ErrDelayOutOfRange
	}

	now := time.Now()
	reminder := store.Reminder{
		ID:          uuid.NewString(),
		UserID:      userID,
		Mentions:    mentions,
		Everyone:    everyone,
		ChannelID:   channelID,
		Description: description,
		TriggerAt:   now.Add(delay).UnixMilli(),
		CreatedAt:   now.UnixMilli(),
	}

	// Write through to disk before arming the timer
	err := engine.doc.Update(func(reminders []store.Reminder) ([]store.Reminder, error) {
		return append(reminders, reminder), nil
	})
	if err != nil {
		return store.Reminder{}, err
	}
	engine.notifyChange()

	engine.arm(reminder)
	log.Info().Msg(fmt.Sprintf("Scheduled reminder %s for user %s in %s", reminder.ID, userID, delay))
	return reminder, nil
}

// Cancel clears a pending reminder. Only the creator may cancel it
func (engine *Engine) Cancel(id, requesterID string) error {

	err := engine.doc.Update(func(reminders []store.Reminder) ([]store.Reminder, error) {
		for i, reminder := range reminders {
			if reminder.ID != id {
				continue
			}
			if reminder.UserID != requesterID {
				return nil, ErrForbidden
			}
			return append(reminders[:i], reminders[i+1:]...), nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return err
	}
	engine.notifyChange()

	engine.clearTimer(id)
	log.Info().Msg(fmt.Sprintf("Cancelled reminder %s", id))
	return nil
}

// ListForUser returns the user's pending reminders sorted by trigger
// time, soonest first. The order matters: the remove command addresses
// reminders by their 1-based position in this list
func (engine *Engine) ListForUser(userID string) ([]store.Reminder, error) {

	reminders, err := engine.doc.Load()
	if err != nil {
		return nil, err
	}
	var mine []store.Reminder
	for _, reminder := range reminders {
		if reminder.UserID == userID {
			mine = append(mine, reminder)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].TriggerAt < mine[j].TriggerAt })
	return mine, nil
}

// ReArmAll reconstructs every timer from the persisted document. Run
// once at process start. Reminders already past due are deleted
// without firing, there is no catch-up
func (engine *Engine) ReArmAll() error {

	now := time.Now().UnixMilli()
	var live []store.Reminder
	err := engine.doc.Update(func(reminders []store.Reminder) ([]store.Reminder, error) {
		live = live[:0]
		for _, reminder := range reminders {
			if reminder.TriggerAt <= now {
				log.Info().Msg(fmt.Sprintf("Dropping reminder %s, trigger time already passed", reminder.ID))
				continue
			}
			live = append(live, reminder)
		}
		return live, nil
	})
	if err != nil {
		return err
	}

	for _, reminder := range live {
		engine.arm(reminder)
	}
	log.Info().Msg(fmt.Sprintf("Re-armed %d reminder(s) from %s", len(live), engine.doc.Filename()))
	return nil
}

// Active returns the number of armed timers
func (engine *Engine) Active() int {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return len(engine.timers)
}

func (engine *Engine) arm(reminder store.Reminder) {
	delay := time.Until(time.UnixMilli(reminder.TriggerAt))
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.timers[reminder.ID] = time.AfterFunc(delay, func() { engine.fire(reminder.ID) })
}

func (engine *Engine) fire(id string) {

	engine.clearTimer(id)

	reminders, err := engine.doc.Load()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not load reminders to fire %s: %v", id, err))
		return
	}
	var reminder store.Reminder
	found := false
	for _, r := range reminders {
		if r.ID == id {
			reminder, found = r, true
			break
		}
	}
	if !found {
		// Cancelled between the timer firing and this lookup
		return
	}

	// A channel that cannot be resolved will never become resolvable,
	// so the reminder is dropped rather than retried
	if !engine.notifier.ChannelExists(reminder.ChannelID) {
		log.Warn().Msg(fmt.Sprintf("Could not find channel %s for reminder %s, dropping it", reminder.ChannelID, id))
		engine.remove(id)
		return
	}

	if err := engine.notifier.Send(reminder.ChannelID, FormatNotification(reminder)); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not send reminder %s: %v", id, err))
	} else {
		log.Info().Msg(fmt.Sprintf("Fired reminder %s", id))
	}
	engine.remove(id)
}

func (engine *Engine) remove(id string) {
	err := engine.doc.Update(func(reminders []store.Reminder) ([]store.Reminder, error) {
		for i, reminder := range reminders {
			if reminder.ID == id {
				return append(reminders[:i], reminders[i+1:]...), nil
			}
		}
		return reminders, nil
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not remove reminder %s: %v", id, err))
		return
	}
	engine.notifyChange()
}

func (engine *Engine) clearTimer(id string) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	if timer, ok := engine.timers[id]; ok {
		timer.Stop()
		delete(engine.timers, id)
	}
}

func (engine *Engine) notifyChange() {
	if engine.onChange != nil {
		engine.onChange()
	}
}

// FormatNotification renders the message sent when a reminder fires
func FormatNotification(reminder store.Reminder) string {
	mention := "@everyone"
	if !reminder.Everyone {
		mention = strings.Join(reminder.Mentions, " ")
		if mention == "" {
			mention = fmt.Sprintf("<@%s>", reminder.UserID)
		}
	}
	return fmt.Sprintf("🔔 **REMINDER** 🔔\n━━━━━━━━━━━━━━━━━━━━\n%s Drifter, your reminder:\n📢 **%s**", mention, reminder.Description)
}
