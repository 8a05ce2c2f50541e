package appointment

import (
	"time"
)

const clockLayout = "15:04:05"

// Weekdays is the canonical weekday naming, in calendar order from Monday.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekdayIndex returns the position of name in Weekdays, or -1.
func WeekdayIndex(name string) int {
	for i, d := range Weekdays {
		if d == name {
			return i
		}
	}
	return -1
}

func IsWeekday(name string) bool {
	return WeekdayIndex(name) >= 0
}

// WeekdayOf names the weekday of t in t's own location.
func WeekdayOf(t time.Time) string {
	return t.Weekday().String()
}

// ClockOf is the HH:MM:SS wall-clock of t in t's own location.
func ClockOf(t time.Time) string {
	return t.Format(clockLayout)
}

// NormalizeClock accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeClock(s string) (string, error) {
	for _, layout := range []string{clockLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", ErrInvalidClock
}

// Window is one recurring weekly open-hours interval with normalized clocks.
type Window struct {
	Weekday string
	Start   string
	End     string
}

// NewWindow validates and normalizes a window.
func NewWindow(weekday, start, end string) (Window, error) {
	if !IsWeekday(weekday) {
		return Window{}, ErrInvalidWeekday
	}
	s, err := NormalizeClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := NormalizeClock(end)
	if err != nil {
		return Window{}, err
	}
	if s >= e {
		return Window{}, ErrEmptyWindow
	}
	return Window{Weekday: weekday, Start: s, End: e}, nil
}

// Contains reports start_time <= clock <= end_time. Both bounds are inclusive.
func (w Window) Contains(clock string) bool {
	return w.Start <= clock && clock <= w.End
}

// WithinAvailability reports whether a booking starting at start fits the
// declared windows. Only the start instant is checked unless strict is set,
// in which case the whole [start, start+d] span must sit inside one window
// on the same calendar day.
func WithinAvailability(windows []Window, start time.Time, d time.Duration, strict bool) bool {
	day := WeekdayOf(start)
	clock := ClockOf(start)

	var endClock string
	if strict {
		end := start.Add(d)
		y1, m1, d1 := start.Date()
		y2, m2, d2 := end.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
		endClock = ClockOf(end)
	}

	for _, w := range windows {
		if w.Weekday != day || !w.Contains(clock) {
			continue
		}
		if strict && !w.Contains(endClock) {
			continue
		}
		return true
	}
	return false
}
