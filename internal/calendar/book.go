package calendar

import (
	"fmt"
	"time"
)

// CalendarNotFoundError is returned for a calendar id the caller never
// supplied. The caller decides whether to retry with a different id.
type CalendarNotFoundError struct {
	ID string
}

func (e *CalendarNotFoundError) Error() string {
	return fmt.Sprintf("calendar %q not found", e.ID)
}

// Book is a read-only set of calendars keyed by id.
type Book struct {
	calendars map[string]*Calendar
}

// NewBook indexes the given calendars. A later calendar with a duplicate id
// replaces an earlier one.
func NewBook(cals ...*Calendar) *Book {
	m := make(map[string]*Calendar, len(cals))
	for _, c := range cals {
		if c != nil {
			m[c.ID()] = c
		}
	}
	return &Book{calendars: m}
}

func (b *Book) Get(id string) (*Calendar, error) {
	if b != nil {
		if c, ok := b.calendars[id]; ok {
			return c, nil
		}
	}
	return nil, &CalendarNotFoundError{ID: id}
}

func (b *Book) IsBusinessDay(d time.Time, calendarID string) (bool, error) {
	c, err := b.Get(calendarID)
	if err != nil {
		return false, err
	}
	return c.IsBusinessDay(d), nil
}

func (b *Book) AddBusinessDays(d time.Time, n int, calendarID string) (time.Time, error) {
	c, err := b.Get(calendarID)
	if err != nil {
		return time.Time{}, err
	}
	return c.AddBusinessDays(d, n), nil
}

func (b *Book) SubtractBusinessDays(d time.Time, n int, calendarID string) (time.Time, error) {
	c, err := b.Get(calendarID)
	if err != nil {
		return time.Time{}, err
	}
	return c.SubtractBusinessDays(d, n), nil
}
