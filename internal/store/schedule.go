package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Everyday is the pseudo-day for events that recur daily
const Everyday = "Everyday"

// Days lists the weekdays in time.Weekday order
var Days = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Event is one entry of the weekly schedule. Times holds canonical
// display strings ("6:00 PM"); an event with no times is informational
// only and never produces a trigger
type Event struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Times       []string `json:"times"`
}

// Schedule maps a day (or Everyday) to its list of events
type Schedule map[string][]Event

// DefaultSchedule returns an empty schedule with every day key present
func DefaultSchedule() Schedule {
	schedule := Schedule{}
	for _, day := range Days {
		schedule[day] = []Event{}
	}
	schedule[Everyday] = []Event{}
	return schedule
}

// ValidDay reports whether the given name is a weekday or Everyday
func ValidDay(day string) bool {
	if day == Everyday {
		return true
	}
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// Normalize re-establishes the structural invariant that all 7 weekday
// keys plus Everyday are present. Returns true if anything was added,
// so the caller knows to persist the normalised form
func (schedule Schedule) Normalize() bool {
	changed := false
	for _, day := range append(append([]string{}, Days...), Everyday) {
		if _, ok := schedule[day]; !ok {
			schedule[day] = []Event{}
			changed = true
		}
	}
	return changed
}

// OpenSchedule opens the schedule document, migrating legacy file
// shapes (bare strings or lists of strings as day values) into the
// current one and persisting the migrated form immediately
func OpenSchedule(filename string) (*Document[Schedule], error) {

	doc := NewDocument[Schedule](filename, DefaultSchedule)

	schedule, err := doc.Load()
	if errors.Is(err, ErrCorrupt) {
		// The strict parse failed. Before declaring the file corrupt,
		// try one upward migration step from the legacy shape
		migrated, merr := migrateLegacySchedule(filename)
		if merr != nil {
			return nil, err
		}
		log.Info().Msg(fmt.Sprintf("Migrated legacy schedule document %s", filename))
		if err := doc.Save(migrated); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	if schedule.Normalize() {
		log.Debug().Msg(fmt.Sprintf("Adding missing day keys to schedule document %s", filename))
		if err := doc.Save(schedule); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// migrateLegacySchedule reads the raw document and coerces legacy day
// values into event lists: a bare string becomes a single event with
// that string as its name, and a list of strings becomes one event per
// string
func migrateLegacySchedule(filename string) (Schedule, error) {

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("legacy schedule does not parse either: %w", err)
	}

	schedule := Schedule{}
	for day, value := range raw {
		events, err := coerceDayValue(value)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", day, err)
		}
		schedule[day] = events
	}
	schedule.Normalize()
	return schedule, nil
}

func coerceDayValue(value json.RawMessage) ([]Event, error) {

	// A bare string is the oldest shape: the whole day was one event name
	var name string
	if err := json.Unmarshal(value, &name); err == nil {
		return []Event{{Name: name, Times: []string{}}}, nil
	}

	// Otherwise it has to be a list, possibly mixing strings and objects
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, fmt.Errorf("day value is neither a string nor a list")
	}
	events := make([]Event, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			events = append(events, Event{Name: name, Times: []string{}})
			continue
		}
		var event Event
		if err := json.Unmarshal(item, &event); err != nil {
			return nil, fmt.Errorf("event is neither a string nor an object")
		}
		if event.Times == nil {
			event.Times = []string{}
		}
		events = append(events, event)
	}
	return events, nil
}
