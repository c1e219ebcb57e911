package engagement

import (
	"strings"
	"time"
)

// Calendar buckets timestamps into civil days of one explicit location.
// Every day-based metric (streaks, active days, time-of-day buckets,
// seasons, period cutoffs) goes through the same Calendar.
type Calendar struct {
	loc *time.Location
}

// NewCalendar creates a calendar for loc. A nil loc means UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// ParseTimezone resolves a zone name. "" and "Local" select the process
// zone; unknown names fall back to UTC.
func ParseTimezone(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location returns the calendar's zone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// In converts t into the calendar's zone.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.Location())
}

// DayNumber returns the civil date of t as a day count since 1970-01-01.
// Consecutive calendar days differ by exactly 1, DST notwithstanding.
func (c Calendar) DayNumber(t time.Time) int {
	y, m, d := c.In(t).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DayStart returns midnight of t's civil day in the calendar's zone.
func (c Calendar) DayStart(t time.Time) time.Time {
	y, m, d := c.In(t).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

// DaysBetween returns the civil-day difference b - a.
func (c Calendar) DaysBetween(a, b time.Time) int {
	return c.DayNumber(b) - c.DayNumber(a)
}

// Day returns the day number of an epoch-millisecond timestamp.
func (c Calendar) Day(ms int64) int {
	return c.DayNumber(time.UnixMilli(ms))
}
