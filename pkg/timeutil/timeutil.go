// Package timeutil provides UTC calendar-day utilities for CodeGrind Hub.
// All activity accounting is done at day granularity in UTC, so every
// component that touches dates goes through this package.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// DayFormat is the canonical layout for day keys ("2006-01-02").
const DayFormat = "2006-01-02"

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns the start of the day (00:00:00) in UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a time as its canonical UTC day key.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// ParseDayKey parses a canonical day key back into a UTC midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, key, time.UTC)
}

// AddDays returns the start of the day n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Positive when b is after a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// WindowKeys returns the day keys for the `days` most recent calendar days
// ending at `end` (inclusive), oldest first.
func WindowKeys(end time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	keys := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		keys = append(keys, DayKey(AddDays(end, -i)))
	}
	return keys
}

// SameDay reports whether two times fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
