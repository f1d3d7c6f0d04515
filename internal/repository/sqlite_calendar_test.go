package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usHolidays() []domain.Holiday {
	return []domain.Holiday{
		{CalendarID: "us", Date: testutil.Date(2025, time.December, 25), Name: "Christmas Day"},
		{CalendarID: "us", Date: testutil.Date(2026, time.January, 1), Name: "New Year's Day"},
		{CalendarID: "us", Date: testutil.Date(2026, time.January, 19), Name: "Martin Luther King Jr. Day"},
	}
}

func TestCalendarRepo_UpsertAndReplace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Calendar{ID: "us", Name: "United States"}))
	require.NoError(t, repo.ReplaceHolidays(ctx, "us", usHolidays()))

	hs, err := repo.ListHolidays(ctx, "us")
	require.NoError(t, err)
	require.Len(t, hs, 3)
	assert.Equal(t, "Christmas Day", hs[0].Name)

	// Replace drops dates that are no longer listed.
	require.NoError(t, repo.ReplaceHolidays(ctx, "us", usHolidays()[:1]))
	hs, err = repo.ListHolidays(ctx, "us")
	require.NoError(t, err)
	assert.Len(t, hs, 1)

	require.NoError(t, repo.Upsert(ctx, domain.Calendar{ID: "us", Name: "US Federal"}))
	cals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cals, 1)
	assert.Equal(t, "US Federal", cals[0].Name)
}

func TestCalendarRepo_GetHolidaysInRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Calendar{ID: "us"}))
	require.NoError(t, repo.ReplaceHolidays(ctx, "us", usHolidays()))

	got, err := repo.GetHolidays(ctx, "us", testutil.Date(2025, time.December, 26), testutil.Date(2026, time.January, 19))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(testutil.Date(2026, time.January, 1)))
	assert.True(t, got[1].Equal(testutil.Date(2026, time.January, 19)))

	empty, err := repo.GetHolidays(ctx, "us", testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 31))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCalendarRepo_AddHolidayAndExists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	ok, err := repo.CalendarExists(ctx, "us")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Upsert(ctx, domain.Calendar{ID: "us"}))
	ok, err = repo.CalendarExists(ctx, "us")
	require.NoError(t, err)
	assert.True(t, ok)

	h := domain.Holiday{CalendarID: "us", Date: testutil.Date(2026, time.July, 3), Name: "Observed"}
	require.NoError(t, repo.AddHoliday(ctx, h))
	h.Name = "Independence Day (observed)"
	require.NoError(t, repo.AddHoliday(ctx, h))

	hs, err := repo.ListHolidays(ctx, "us")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Independence Day (observed)", hs[0].Name)
}

func TestCalendarRepo_LoadsIntoCalendar(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Calendar{ID: "us"}))
	require.NoError(t, repo.ReplaceHolidays(ctx, "us", usHolidays()))

	from, to := calendar.Window(10, testutil.Date(2025, time.December, 31))
	cal, err := calendar.Load(ctx, repo, "us", from, to)
	require.NoError(t, err)
	assert.False(t, cal.IsBusinessDay(testutil.Date(2025, time.December, 25)))
	assert.True(t, cal.IsBusinessDay(testutil.Date(2025, time.December, 26)))

	_, err = calendar.Load(ctx, repo, "xx", from, to)
	var notFound *calendar.CalendarNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
