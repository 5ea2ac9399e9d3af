// Package streak holds the pure habit-progression logic: calendar-day
// arithmetic, the mark-done state machine, XP awards and the level curve.
// It never touches storage; callers persist whatever it decides.
package streak

import "time"

const dayLayout = "2006-01-02"

// Day is a calendar date at day granularity, formatted YYYY-MM-DD.
// All comparisons happen on UTC calendar days so a streak does not
// silently break when the device changes timezone or locale.
type Day string

// DayOf truncates an instant to its UTC calendar day.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

// IsZero reports whether the day is unset (task never completed).
func (d Day) IsZero() bool {
	return d == ""
}

// Next returns the following calendar day. The zero Day has no successor
// and is returned unchanged.
func (d Day) Next() Day {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return d
	}
	return Day(t.AddDate(0, 0, 1).Format(dayLayout))
}

// Valid reports whether d is either zero or a well-formed YYYY-MM-DD date.
func (d Day) Valid() bool {
	if d.IsZero() {
		return true
	}
	_, err := time.Parse(dayLayout, string(d))
	return err == nil
}
