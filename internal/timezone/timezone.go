package timezone

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "UTC"

// LocalLayout is the naive wire format for appointment times.
const LocalLayout = "2006-01-02T15:04:05"

var ErrInvalidLocalTime = errors.New("invalid local date-time")

var localLayouts = []string{
	LocalLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to fallback and then to UTC.
func Location(tz, fallback string) *time.Location {
	for _, name := range []string{tz, fallback} {
		if !IsValid(name) {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// NowIn is the current instant in loc.
func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// ParseLocal reads a naive ISO-8601 date-time as wall clock in loc.
// Fractional seconds and a trailing zone designator are accepted and
// dropped: the wall clock is always interpreted in loc.
func ParseLocal(s string, loc *time.Location) (time.Time, error) {
	s = stripZone(strings.TrimSpace(s))
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidLocalTime
}

// FormatLocal renders t in loc without a zone designator.
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LocalLayout)
}

func stripZone(s string) string {
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return s[:len(s)-1]
	}
	// date part is fixed width; an offset is a sign after the time
	if len(s) > 10 {
		if i := strings.LastIndexAny(s[10:], "+-"); i >= 0 {
			return s[:10+i]
		}
	}
	return s
}
