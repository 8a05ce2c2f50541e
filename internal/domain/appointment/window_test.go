package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", got)

	got, err = NormalizeClock("17:30:15")
	require.NoError(t, err)
	assert.Equal(t, "17:30:15", got)

	for _, bad := range []string{"", "9am", "25:00", "12:61", "noon"} {
		_, err := NormalizeClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, bad)
	}
}

func TestNewWindow(t *testing.T) {
	w, err := NewWindow("Monday", "09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, Window{Weekday: "Monday", Start: "09:00:00", End: "17:00:00"}, w)

	_, err = NewWindow("monday", "09:00", "17:00")
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = NewWindow("Monday", "17:00", "09:00")
	assert.ErrorIs(t, err, ErrEmptyWindow)

	_, err = NewWindow("Monday", "09:00", "09:00")
	assert.ErrorIs(t, err, ErrEmptyWindow)

	_, err = NewWindow("Monday", "x", "09:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestWeekdayIndexOrder(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex("Monday"))
	assert.Equal(t, 6, WeekdayIndex("Sunday"))
	assert.Equal(t, -1, WeekdayIndex("Funday"))
	// 2025-01-06 is a Monday
	assert.Equal(t, "Monday", WeekdayOf(time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)))
}

func TestWithinAvailability_StartInstantOnly(t *testing.T) {
	windows := []Window{{Weekday: "Monday", Start: "09:00:00", End: "17:00:00"}}
	mon := func(h, m int) time.Time { return time.Date(2025, 1, 6, h, m, 0, 0, time.UTC) }

	assert.True(t, WithinAvailability(windows, mon(10, 0), time.Hour, false))
	assert.True(t, WithinAvailability(windows, mon(9, 0), time.Hour, false))
	assert.True(t, WithinAvailability(windows, mon(17, 0), time.Hour, false), "end bound is inclusive")
	assert.False(t, WithinAvailability(windows, mon(8, 59), time.Hour, false))
	assert.False(t, WithinAvailability(windows, mon(17, 1), time.Hour, false))

	// the duration is not checked against the window end
	assert.True(t, WithinAvailability(windows, mon(16, 45), 2*time.Hour, false))

	tue := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)
	assert.False(t, WithinAvailability(windows, tue, time.Hour, false))
}

func TestWithinAvailability_Strict(t *testing.T) {
	windows := []Window{
		{Weekday: "Monday", Start: "09:00:00", End: "12:00:00"},
		{Weekday: "Monday", Start: "23:00:00", End: "23:59:59"},
	}
	mon := func(h, m int) time.Time { return time.Date(2025, 1, 6, h, m, 0, 0, time.UTC) }

	assert.True(t, WithinAvailability(windows, mon(11, 0), time.Hour, true))
	assert.False(t, WithinAvailability(windows, mon(11, 30), time.Hour, true))
	assert.False(t, WithinAvailability(windows, mon(23, 30), time.Hour, true), "span crosses midnight")
}

func TestWithinAvailability_UsesLocationOfStart(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	windows := []Window{{Weekday: "Sunday", Start: "22:00:00", End: "23:59:00"}}

	// Monday 01:00 UTC is Sunday 22:00 at UTC-3
	start := time.Date(2025, 1, 6, 1, 0, 0, 0, time.UTC).In(loc)
	assert.True(t, WithinAvailability(windows, start, time.Minute, false))
}

func TestWithinAvailability_NoWindows(t *testing.T) {
	for h := 0; h < 24; h++ {
		start := time.Date(2025, 1, 6, h, 0, 0, 0, time.UTC)
		assert.False(t, WithinAvailability(nil, start, time.Minute, false))
	}
}
