package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/holiday"
	"github.com/alexanderramin/casetrack/internal/repository"
)

type calendarService struct {
	calendars repository.CalendarRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewCalendarService(
	calendars repository.CalendarRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CalendarService {
	return &calendarService{
		calendars: calendars,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) Import(ctx context.Context, path string) (sum *CalendarSummary, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "import-calendar", fields, &err)()

	f, err := holiday.LoadFile(path)
	if err != nil {
		return nil, err
	}
	cal := f.Calendar()
	holidays := f.ToHolidays()
	fields["calendar"] = cal.ID
	fields["holiday_count"] = len(holidays)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCalendars := repository.NewSQLiteCalendarRepo(tx)
		if err := txCalendars.Upsert(ctx, cal); err != nil {
			return err
		}
		return txCalendars.ReplaceHolidays(ctx, cal.ID, holidays)
	})
	if err != nil {
		return nil, err
	}
	return &CalendarSummary{Calendar: cal, HolidayCount: len(holidays)}, nil
}

func (s *calendarService) List(ctx context.Context) ([]CalendarSummary, error) {
	cals, err := s.calendars.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CalendarSummary, 0, len(cals))
	for _, c := range cals {
		hs, err := s.calendars.ListHolidays(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CalendarSummary{Calendar: c, HolidayCount: len(hs)})
	}
	return out, nil
}

func (s *calendarService) Ensure(ctx context.Context, id, name string) error {
	ok, err := s.calendars.CalendarExists(ctx, id)
	if err != nil || ok {
		return err
	}
	return s.calendars.Upsert(ctx, domain.Calendar{ID: id, Name: name})
}

// AddHoliday adds one holiday to an existing calendar. Cases on that calendar
// pick it up on their next replan.
func (s *calendarService) AddHoliday(ctx context.Context, h domain.Holiday) (err error) {
	defer observe(ctx, s.observer, "add-holiday", map[string]any{"calendar": h.CalendarID}, &err)()

	ok, err := s.calendars.CalendarExists(ctx, h.CalendarID)
	if err != nil {
		return err
	}
	if !ok {
		return classify(&calendar.CalendarNotFoundError{ID: h.CalendarID})
	}
	h.Date = calendar.Normalize(h.Date)
	return s.calendars.AddHoliday(ctx, h)
}

func (s *calendarService) IsBusinessDay(ctx context.Context, calendarID string, d time.Time) (bool, error) {
	from, to := calendar.Window(0, d)
	cal, err := calendar.Load(ctx, s.calendars, calendarID, from, to)
	if err != nil {
		return false, classify(err)
	}
	return calendar.NewBook(cal).IsBusinessDay(d, calendarID)
}

func (s *calendarService) AddBusinessDays(ctx context.Context, calendarID string, d time.Time, n int) (time.Time, error) {
	if n > domain.MaxOffsetDays || n < -domain.MaxOffsetDays {
		return time.Time{}, fmt.Errorf("business day count %d is outside ±%d", n, domain.MaxOffsetDays)
	}
	from, to := calendar.Window(n, d)
	cal, err := calendar.Load(ctx, s.calendars, calendarID, from, to)
	if err != nil {
		return time.Time{}, classify(err)
	}
	return calendar.NewBook(cal).AddBusinessDays(d, n, calendarID)
}

func (s *calendarService) BusinessDaysBetween(ctx context.Context, calendarID string, from, to time.Time) (int, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	if days := int(to.Sub(from).Hours() / 24); days > domain.MaxOffsetDays || days < -domain.MaxOffsetDays {
		return 0, fmt.Errorf("range of %d days is outside ±%d", days, domain.MaxOffsetDays)
	}
	lo, hi := calendar.Window(0, from, to)
	cal, err := calendar.Load(ctx, s.calendars, calendarID, lo, hi)
	if err != nil {
		return 0, classify(err)
	}
	return cal.BusinessDaysBetween(from, to), nil
}
