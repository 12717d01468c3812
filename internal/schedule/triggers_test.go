package schedule

import (
	"strings"
	"testing"
	"time"

	"warbornebot/internal/store"
	"warbornebot/internal/timeutil"

	"github.com/robfig/cron/v3"
)

func scheduleWith(day string, event store.Event) store.Schedule {
	schedule := store.DefaultSchedule()
	schedule[day] = append(schedule[day], event)
	return schedule
}

func triggersByKind(triggers []Trigger) (events, reminders []Trigger) {
	for _, trigger := range triggers {
		if trigger.Reminder {
			reminders = append(reminders, trigger)
		} else {
			events = append(events, trigger)
		}
	}
	return
}

func TestBuildTriggersWeekly(t *testing.T) {

	schedule := scheduleWith("Wednesday", store.Event{Name: "Siege", Times: []string{"6:00 PM"}})
	triggers := BuildTriggers(schedule)
	if len(triggers) != 2 {
		t.Fatalf("one timed event should derive 2 triggers, got %d", len(triggers))
	}

	events, reminders := triggersByKind(triggers)
	if events[0].Spec != "0 18 * * 3" {
		t.Fatalf("event spec = %q, want Wednesday 18:00", events[0].Spec)
	}
	if reminders[0].Spec != "30 17 * * 3" {
		t.Fatalf("reminder spec = %q, want Wednesday 17:30", reminders[0].Spec)
	}
}

func TestBuildTriggersMidnightCrossing(t *testing.T) {

	schedule := scheduleWith("Monday", store.Event{Name: "Reset", Description: "Weekly reset", Times: []string{"12:00 AM"}})
	_, reminders := triggersByKind(BuildTriggers(schedule))
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder trigger, got %d", len(reminders))
	}

	// 30 minutes before Monday 00:00 is Sunday 23:30
	if reminders[0].Spec != "30 23 * * 0" {
		t.Fatalf("reminder spec = %q, want Sunday 23:30", reminders[0].Spec)
	}
}

func TestBuildTriggersEveryday(t *testing.T) {

	schedule := scheduleWith(store.Everyday, store.Event{Name: "Dailies", Times: []string{"12:15 AM"}})
	events, reminders := triggersByKind(BuildTriggers(schedule))
	if events[0].Spec != "15 0 * * *" {
		t.Fatalf("event spec = %q, want daily 00:15", events[0].Spec)
	}
	// The reminder wraps under midnight but stays daily
	if reminders[0].Spec != "45 23 * * *" {
		t.Fatalf("reminder spec = %q, want daily 23:45", reminders[0].Spec)
	}
}

func TestBuildTriggersSkipsBadInput(t *testing.T) {

	schedule := store.DefaultSchedule()
	schedule["Friday"] = []store.Event{
		{Name: "Broken", Times: []string{"whenever"}},
		{Name: "Fine", Times: []string{"9:00 PM"}},
		{Name: "Informational"}, // no times, no triggers
	}
	triggers := BuildTriggers(schedule)
	if len(triggers) != 2 {
		t.Fatalf("only the well-formed timed event should derive triggers, got %d", len(triggers))
	}
	for _, trigger := range triggers {
		if trigger.Event.Name != "Fine" {
			t.Fatalf("unexpected trigger for event %s", trigger.Event.Name)
		}
	}
}

func TestTriggerCadenceFromMonday(t *testing.T) {

	schedule := scheduleWith("Monday", store.Event{Name: "Reset", Times: []string{"12:00 AM"}})
	events, reminders := triggersByKind(BuildTriggers(schedule))

	parse := func(spec string) cron.Schedule {
		s, err := cron.ParseStandard(spec)
		if err != nil {
			t.Fatalf("ParseStandard(%q): %v", spec, err)
		}
		return s
	}

	// Just after Monday 2025-06-02 00:00 in the community zone, the
	// event does not fire again until the following Monday...
	monday := time.Date(2025, time.June, 2, 0, 0, 1, 0, timeutil.Location())
	nextEvent := parse(events[0].Spec).Next(monday)
	if nextEvent.Weekday() != time.Monday || nextEvent.Day() != 9 {
		t.Fatalf("next event firing = %v, want Monday June 9", nextEvent)
	}

	// ...and the reminder not until the Sunday before it, 23:30
	nextReminder := parse(reminders[0].Spec).Next(monday)
	if nextReminder.Weekday() != time.Sunday || nextReminder.Day() != 8 ||
		nextReminder.Hour() != 23 || nextReminder.Minute() != 30 {
		t.Fatalf("next reminder firing = %v, want Sunday June 8 23:30", nextReminder)
	}
}

func TestFormatNotification(t *testing.T) {

	event := store.Event{Name: "Siege", Description: "Bring siege gear"}
	tod := timeutil.TimeOfDay{Hour: 18, Minute: 0}

	start := FormatNotification(Trigger{Day: "Wednesday", Time: tod, Event: event})
	for _, want := range []string{"Event Starting Now", "**Day:** Wednesday", "Siege", "6:00 PM CST", "Bring siege gear"} {
		if !strings.Contains(start, want) {
			t.Fatalf("start notification missing %q: %q", want, start)
		}
	}

	reminder := FormatNotification(Trigger{Day: store.Everyday, Time: tod, Event: event, Reminder: true})
	if !strings.Contains(reminder, "30-Minute Reminder") {
		t.Fatalf("reminder notification mislabelled: %q", reminder)
	}
	if strings.Contains(reminder, "**Day:**") {
		t.Fatalf("daily events should not carry a day line: %q", reminder)
	}
}
