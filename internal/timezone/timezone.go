package timezone

import (
	"errors"
	"time"
)

const DefaultTimezone = "UTC"

const (
	DayLayout      = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
	spacedLayout   = "2006-01-02 15:04"
)

var ErrInvalidDateTime = errors.New("invalid date-time")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// ParseDateTime accepts RFC 3339 (offset wins) or a local wall time in loc.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range []string{dateTimeLayout, spacedLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

func ParseDay(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, raw, loc)
}

// DayWindow returns [00:00, next day 00:00) around t in t's location.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
