package utils

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates. Plain
// dates are read as UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// StartOfDayUTC truncates t to midnight of its UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonthUTC returns midnight UTC on the first day of t's UTC month.
func StartOfMonthUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfWeekUTC returns midnight UTC on the Sunday starting t's week.
func StartOfWeekUTC(t time.Time) time.Time {
	day := StartOfDayUTC(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
