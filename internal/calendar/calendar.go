package calendar

import (
	"time"
)

// DateLayout is the storage and display format for calendar dates.
const DateLayout = "2006-01-02"

// Date returns the UTC midnight for the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the time-of-day and location, keeping the calendar day.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// Calendar answers business-day questions for one holiday set. Saturdays and
// Sundays are never business days. A Calendar is immutable after New.
type Calendar struct {
	id       string
	holidays map[string]struct{}
}

// New builds a calendar from a holiday list. An empty list yields a
// weekends-only calendar.
func New(id string, holidays []time.Time) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Format(DateLayout)] = struct{}{}
	}
	return &Calendar{id: id, holidays: set}
}

func (c *Calendar) ID() string {
	return c.id
}

// HolidayCount returns the number of distinct holidays known to the calendar.
func (c *Calendar) HolidayCount() int {
	return len(c.holidays)
}

// IsHoliday reports whether d is listed in the holiday set.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[d.Format(DateLayout)]
	return ok
}

// IsBusinessDay is false for weekends and holidays.
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(d)
}

// AddBusinessDays walks forward one calendar day at a time and returns the
// day on which the n-th business day is reached. The start date itself is
// never counted, so n == 0 returns d unchanged even when d is not a business
// day. A negative n walks backward.
func (c *Calendar) AddBusinessDays(d time.Time, n int) time.Time {
	if n < 0 {
		return c.walk(Normalize(d), -n, -1)
	}
	return c.walk(Normalize(d), n, 1)
}

// SubtractBusinessDays is AddBusinessDays in the backward direction.
func (c *Calendar) SubtractBusinessDays(d time.Time, n int) time.Time {
	if n < 0 {
		return c.walk(Normalize(d), -n, 1)
	}
	return c.walk(Normalize(d), n, -1)
}

// Offset applies a signed business-day delta.
func (c *Calendar) Offset(d time.Time, delta int) time.Time {
	if delta < 0 {
		return c.SubtractBusinessDays(d, -delta)
	}
	return c.AddBusinessDays(d, delta)
}

// BusinessDaysBetween counts business days in (from, to]. It is negative when
// to precedes from.
func (c *Calendar) BusinessDaysBetween(from, to time.Time) int {
	from, to = Normalize(from), Normalize(to)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}
	count := 0
	for cur := from.AddDate(0, 0, 1); !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		if c.IsBusinessDay(cur) {
			count++
		}
	}
	return sign * count
}

func (c *Calendar) walk(d time.Time, n, step int) time.Time {
	cur := d
	for taken := 0; taken < n; {
		cur = cur.AddDate(0, 0, step)
		if c.IsBusinessDay(cur) {
			taken++
		}
	}
	return cur
}
