package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The community runs on US central time, so every wall-clock
// computation in the bot is pinned to this zone
const zoneName = "America/Chicago"

var location *time.Location

func init() {
	var err error
	location, err = time.LoadLocation(zoneName)
	if err != nil {
		panic(fmt.Sprintf("could not load timezone %s: %v", zoneName, err))
	}
}

// Location returns the fixed community timezone
func Location() *time.Location {
	return location
}

// Now returns the current civil time in the community timezone
func Now() time.Time {
	return time.Now().In(location)
}

// CivilDate resolves a calendar date and wall-clock time in the
// community timezone to an absolute instant. The second return value
// is false if the calendar date does not exist
func CivilDate(year int, month time.Month, day, hour, minute int) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, 0, 0, location)
	// time.Date normalises out-of-range components, so a date that
	// comes back different from what was asked for never existed
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// NextClock returns the first instant strictly after the given one at
// which the community wall clock reads hour:minute
func NextClock(after time.Time, hour, minute int) time.Time {
	civil := after.In(location)
	next := time.Date(civil.Year(), civil.Month(), civil.Day(), hour, minute, 0, 0, location)
	if !next.After(after) {
		next = time.Date(civil.Year(), civil.Month(), civil.Day()+1, hour, minute, 0, 0, location)
	}
	return next
}

// TimeOfDay is a wall-clock time with no date attached
type TimeOfDay struct {
	Hour   int
	Minute int
}

var timeOfDayRegex = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::\d{2})?\s*(am|pm)?$`)

// ParseTimeOfDay extracts a time of day from user input such as
// "6:00 PM" or "18:30". Inputs without an AM/PM suffix are taken to be
// 24-hour already. The second return value is false if the input does
// not look like a time at all, so callers can validate a whole batch
// and report every bad token together
func ParseTimeOfDay(text string) (TimeOfDay, bool) {
	match := timeOfDayRegex.FindStringSubmatch(text)
	if match == nil {
		return TimeOfDay{}, false
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, false
	}

	period := strings.ToLower(match[3])
	if period == "pm" && hour < 12 {
		hour += 12
	} else if period == "am" && hour == 12 {
		hour = 0
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// String renders the canonical 12-hour display form, e.g. "6:00 PM".
// Equivalent inputs ("18:00", "6:00 pm") collapse to the same string
func (tod TimeOfDay) String() string {
	displayHour := tod.Hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	period := "AM"
	if tod.Hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, tod.Minute, period)
}

// Canonicalize parses and re-renders a time string, so that "18:00"
// and "6:00 PM" dedupe to the same stored value
func Canonicalize(text string) (string, bool) {
	tod, ok := ParseTimeOfDay(text)
	if !ok {
		return "", false
	}
	return tod.String(), true
}
