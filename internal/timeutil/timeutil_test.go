package timeutil

import (
	"testing"
	"time"
)

func TestParseTimeOfDayEquivalences(t *testing.T) {

	cases := []struct {
		twelve     string
		twentyFour string
		want       TimeOfDay
	}{
		{"6:00 PM", "18:00", TimeOfDay{18, 0}},
		{"6:00 AM", "6:00", TimeOfDay{6, 0}},
		{"12:00 AM", "0:00", TimeOfDay{0, 0}},
		{"12:00 PM", "12:00", TimeOfDay{12, 0}},
		{"11:30 pm", "23:30", TimeOfDay{23, 30}},
		{"1:05pm", "13:05", TimeOfDay{13, 5}},
	}
	for _, c := range cases {
		got, ok := ParseTimeOfDay(c.twelve)
		if !ok || got != c.want {
			t.Fatalf("ParseTimeOfDay(%q) = %v, %v, want %v", c.twelve, got, ok, c.want)
		}
		got, ok = ParseTimeOfDay(c.twentyFour)
		if !ok || got != c.want {
			t.Fatalf("ParseTimeOfDay(%q) = %v, %v, want %v", c.twentyFour, got, ok, c.want)
		}
	}
}

func TestParseTimeOfDayWithSeconds(t *testing.T) {
	got, ok := ParseTimeOfDay("18:30:00")
	if !ok || got != (TimeOfDay{18, 30}) {
		t.Fatalf("ParseTimeOfDay with seconds = %v, %v", got, ok)
	}
}

func TestParseTimeOfDayInvalid(t *testing.T) {

	for _, text := range []string{"", "six pm", "25:00", "12:60", "12", "12:5", "7:00 XM"} {
		if _, ok := ParseTimeOfDay(text); ok {
			t.Fatalf("ParseTimeOfDay(%q) should not parse", text)
		}
	}
}

func TestFormatIsCanonical(t *testing.T) {

	// Formatting an already-canonical string parses back to itself
	for _, text := range []string{"6:00 PM", "12:00 AM", "12:00 PM", "11:59 PM", "1:05 AM"} {
		canonical, ok := Canonicalize(text)
		if !ok {
			t.Fatalf("Canonicalize(%q) did not parse", text)
		}
		if canonical != text {
			t.Fatalf("Canonicalize(%q) = %q, want identity", text, canonical)
		}
	}
}

func TestCanonicalizeCollapsesSpellings(t *testing.T) {

	a, _ := Canonicalize("18:00")
	b, _ := Canonicalize("6:00 pm")
	if a != b || a != "6:00 PM" {
		t.Fatalf("equivalent inputs did not collapse: %q vs %q", a, b)
	}
}

func TestCivilDateInvalid(t *testing.T) {

	if _, ok := CivilDate(2026, time.February, 30, 12, 0); ok {
		t.Fatalf("February 30 should not resolve")
	}
	if _, ok := CivilDate(2025, time.February, 29, 12, 0); ok {
		t.Fatalf("February 29 of a non-leap year should not resolve")
	}
	if _, ok := CivilDate(2024, time.February, 29, 12, 0); !ok {
		t.Fatalf("February 29 of a leap year should resolve")
	}
}

func TestCivilDateCrossesDST(t *testing.T) {

	// US DST started on 2025-03-09: 18:00 wall clock is UTC-6 before
	// and UTC-5 after the transition
	before, ok := CivilDate(2025, time.March, 8, 18, 0)
	if !ok {
		t.Fatalf("could not resolve date before DST")
	}
	after, ok := CivilDate(2025, time.March, 9, 18, 0)
	if !ok {
		t.Fatalf("could not resolve date after DST")
	}
	if got := after.Sub(before); got != 23*time.Hour {
		t.Fatalf("spring-forward day should be 23 hours between equal wall clocks, got %s", got)
	}
	if before.UTC().Hour() == after.UTC().Hour() {
		t.Fatalf("UTC offset should change across the DST boundary")
	}
}

func TestNextClock(t *testing.T) {

	// 2025-06-02 is a Monday; from 10:00 the next 23:00 is the same
	// day, from 23:30 it is the day after
	morning := time.Date(2025, time.June, 2, 10, 0, 0, 0, Location())
	next := NextClock(morning, 23, 0)
	if next.Day() != 2 || next.Hour() != 23 {
		t.Fatalf("NextClock from morning = %v", next)
	}

	night := time.Date(2025, time.June, 2, 23, 30, 0, 0, Location())
	next = NextClock(night, 23, 0)
	if next.Day() != 3 || next.Hour() != 23 {
		t.Fatalf("NextClock from late night = %v", next)
	}
}
