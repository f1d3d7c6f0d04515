package calendar

import (
	"context"
	"fmt"
	"time"
)

// HolidayLookup supplies holiday dates for a calendar. Implementations return
// an empty slice when the range has no holidays.
type HolidayLookup interface {
	GetHolidays(ctx context.Context, calendarID string, from, to time.Time) ([]time.Time, error)
}

// Source is a HolidayLookup that can also tell whether a calendar id exists.
type Source interface {
	HolidayLookup
	CalendarExists(ctx context.Context, calendarID string) (bool, error)
}

// windowPadDays covers weekends around the walked range.
const windowPadDays = 60

// Window returns the date range a calculation may touch when every computed
// date lies within span business days of one of the anchors, ignoring
// holidays. Load widens it by the holidays it finds.
func Window(span int, anchors ...time.Time) (from, to time.Time) {
	if span < 0 {
		span = -span
	}
	pad := span*2 + windowPadDays
	for i, a := range anchors {
		a = Normalize(a)
		lo, hi := a.AddDate(0, 0, -pad), a.AddDate(0, 0, pad)
		if i == 0 || lo.Before(from) {
			from = lo
		}
		if i == 0 || hi.After(to) {
			to = hi
		}
	}
	return from, to
}

// Load resolves one calendar over [from, to] from src. Each holiday can push
// a walk one day further, so the range is widened on both sides by the
// number of holidays inside it until that number stops growing.
func Load(ctx context.Context, src Source, calendarID string, from, to time.Time) (*Calendar, error) {
	ok, err := src.CalendarExists(ctx, calendarID)
	if err != nil {
		return nil, fmt.Errorf("checking calendar %q: %w", calendarID, err)
	}
	if !ok {
		return nil, &CalendarNotFoundError{ID: calendarID}
	}

	lo, hi := from, to
	grown := 0
	for {
		holidays, err := src.GetHolidays(ctx, calendarID, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("loading holidays for %q: %w", calendarID, err)
		}
		cal := New(calendarID, holidays)
		n := cal.HolidayCount()
		if n <= grown {
			return cal, nil
		}
		grown = n
		lo, hi = from.AddDate(0, 0, -n), to.AddDate(0, 0, n)
	}
}
