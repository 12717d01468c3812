package schedule

import (
	"fmt"

	"warbornebot/internal/store"
	"warbornebot/internal/timeutil"

	"github.com/rs/zerolog/log"
)

// How much earlier than the event itself the reminder fires
const reminderLead = 30

// Trigger is one derived recurring firing: either an event start or
// its 30-minute-earlier reminder. Spec is a standard cron expression
// to be evaluated in the community timezone
type Trigger struct {
	Spec     string
	Day      string // day the event belongs to, Everyday for daily events
	Time     timeutil.TimeOfDay
	Event    store.Event
	Reminder bool
}

func dayIndex(day string) (int, bool) {
	for i, d := range store.Days {
		if d == day {
			return i, true
		}
	}
	return 0, false
}

// BuildTriggers derives the full set of recurring triggers for a
// schedule: one per event time, plus one reminder 30 minutes earlier,
// shifted to the previous weekday when the subtraction crosses
// midnight. Malformed times and unknown days are skipped with a log
// line, they never abort the rest of the derivation
func BuildTriggers(schedule store.Schedule) []Trigger {

	var triggers []Trigger
	for day, events := range schedule {

		weekday, known := dayIndex(day)
		if day != store.Everyday && !known {
			log.Warn().Msg(fmt.Sprintf("Skipping unknown schedule day %s", day))
			continue
		}

		for _, event := range events {
			for _, text := range event.Times {

				tod, ok := timeutil.ParseTimeOfDay(text)
				if !ok {
					log.Warn().Msg(fmt.Sprintf("Skipping malformed time %q of event %s on %s", text, event.Name, day))
					continue
				}

				// Reminder time, wrapping under midnight if needed
				remMinutes := tod.Hour*60 + tod.Minute - reminderLead
				crossed := remMinutes < 0
				if crossed {
					remMinutes += 24 * 60
				}
				remTod := timeutil.TimeOfDay{Hour: remMinutes / 60, Minute: remMinutes % 60}

				if day == store.Everyday {
					triggers = append(triggers,
						Trigger{Spec: fmt.Sprintf("%d %d * * *", tod.Minute, tod.Hour), Day: day, Time: tod, Event: event},
						Trigger{Spec: fmt.Sprintf("%d %d * * *", remTod.Minute, remTod.Hour), Day: day, Time: tod, Event: event, Reminder: true},
					)
					continue
				}

				remWeekday := weekday
				if crossed {
					remWeekday = (weekday + 6) % 7
				}
				triggers = append(triggers,
					Trigger{Spec: fmt.Sprintf("%d %d * * %d", tod.Minute, tod.Hour, weekday), Day: day, Time: tod, Event: event},
					Trigger{Spec: fmt.Sprintf("%d %d * * %d", remTod.Minute, remTod.Hour, remWeekday), Day: day, Time: tod, Event: event, Reminder: true},
				)
			}
		}
	}
	return triggers
}

// FormatNotification renders the announcement for a trigger firing,
// distinguishing the 30-minute reminder from the event start. The day
// line is suppressed for daily events
func FormatNotification(trigger Trigger) string {

	var message string
	if trigger.Reminder {
		message = "⏰ **30-Minute Reminder**\n"
	} else {
		message = "🔔 **Event Starting Now**\n"
	}
	if trigger.Day != store.Everyday {
		message += fmt.Sprintf("**Day:** %s\n", trigger.Day)
	}
	message += fmt.Sprintf("**Event:** %s (%s CST)\n", trigger.Event.Name, trigger.Time)
	if trigger.Event.Description != "" {
		message += fmt.Sprintf("**Description:** %s\n", trigger.Event.Description)
	}
	return message
}
