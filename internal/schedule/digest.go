package schedule

import (
	"fmt"
	"strings"

	"warbornebot/internal/store"
	"warbornebot/internal/timeutil"

	"github.com/rs/zerolog/log"
)

// Community wall-clock time of the daily digest post
const (
	DigestHour   = 23
	DigestMinute = 0
)

var dayEmojis = map[string]string{
	"Sunday":    "♻️",
	"Monday":    "🏆",
	"Tuesday":   "⚡",
	"Wednesday": "📈",
	"Thursday":  "☢️",
	"Friday":    "⚔️",
	"Saturday":  "🥩",
}

// Digest posts one summary of today's and tomorrow's events per civil
// day, independent of the per-event triggers
type Digest struct {
	doc       *store.Document[store.Schedule]
	notifier  Notifier
	channelID string
}

func NewDigest(doc *store.Document[store.Schedule], notifier Notifier, channelID string) *Digest {
	return &Digest{doc: doc, notifier: notifier, channelID: channelID}
}

// Attach installs the digest as a daily job on the scheduler, outside
// the trigger set that Install replaces
func (digest *Digest) Attach(scheduler *Scheduler) error {
	return scheduler.AddDaily(DigestHour, DigestMinute, digest.Post)
}

// Post composes and sends the digest now. Failures are logged, the
// next civil day gets a fresh attempt
func (digest *Digest) Post() {

	schedule, err := digest.doc.Load()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not load schedule for the daily digest: %v", err))
		return
	}

	today := store.Days[timeutil.Now().Weekday()]
	tomorrow := store.Days[(int(timeutil.Now().Weekday())+1)%7]

	if !digest.notifier.ChannelExists(digest.channelID) {
		log.Warn().Msg(fmt.Sprintf("Could not find announcement channel %s, skipping daily digest", digest.channelID))
		return
	}
	if err := digest.notifier.Send(digest.channelID, FormatDigest(schedule, today, tomorrow)); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not post daily digest: %v", err))
		return
	}
	log.Info().Msg(fmt.Sprintf("Posted daily digest for %s", today))
}

// FormatDigest renders the digest message for the given pair of days
func FormatDigest(schedule store.Schedule, today, tomorrow string) string {

	var sb strings.Builder
	sb.WriteString("📅 **Daily Event Schedule**\n")
	sb.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	sb.WriteString(fmt.Sprintf("%s **%s's Events:**\n", dayEmojis[today], today))
	sb.WriteString(formatEventList(schedule[today]))

	if len(schedule[tomorrow]) > 0 {
		sb.WriteString(fmt.Sprintf("\n\n%s **Tomorrow (%s):**\n", dayEmojis[tomorrow], tomorrow))
		sb.WriteString(formatEventList(schedule[tomorrow]))
	}

	sb.WriteString("\n\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n💡 *Use `/wb-schedule view` to see the full week!*")
	return sb.String()
}

func formatEventList(events []store.Event) string {

	if len(events) == 0 {
		return "   • _No events scheduled_"
	}
	lines := make([]string, 0, len(events))
	for i, event := range events {
		text := fmt.Sprintf("   **%d.** **Event:** %s", i+1, event.Name)
		if len(event.Times) > 0 {
			text += fmt.Sprintf("\n     **Time:** %s CST", strings.Join(event.Times, ", "))
		}
		if event.Description != "" {
			text += fmt.Sprintf("\n     **Description:** %s", event.Description)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n\n")
}
