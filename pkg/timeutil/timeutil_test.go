package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyNormalizesToUTC(t *testing.T) {
	// 23:30 in UTC+5 is 18:30 UTC the same day; 02:30 in UTC+5 is the
	// previous UTC day.
	almaty := time.FixedZone("UTC+5", 5*3600)

	assert.Equal(t, "2026-08-15", DayKey(time.Date(2026, 8, 15, 23, 30, 0, 0, almaty)))
	assert.Equal(t, "2026-08-14", DayKey(time.Date(2026, 8, 15, 2, 30, 0, 0, almaty)))
}

func TestParseDayKeyRoundTrip(t *testing.T) {
	day, err := ParseDayKey("2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2026-08-31", DayKey(day))

	_, err = ParseDayKey("not-a-day")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 8, 31, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), StartOfDay(at))
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-31", DayKey(AddDays(at, -1)))
	assert.Equal(t, "2026-09-03", DayKey(AddDays(at, 2)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(b, b))
}

func TestWindowKeys(t *testing.T) {
	end := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	keys := WindowKeys(end, 3)
	assert.Equal(t, []string{"2026-08-29", "2026-08-30", "2026-08-31"}, keys)

	assert.Nil(t, WindowKeys(end, 0))
	assert.Nil(t, WindowKeys(end, -1))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 8, 31, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	next := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, next))
}
