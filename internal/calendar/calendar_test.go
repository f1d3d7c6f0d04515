package calendar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusinessDay_WeekendsAndHolidays(t *testing.T) {
	cal := New("us", []time.Time{Date(2025, 12, 25)})

	assert.True(t, cal.IsBusinessDay(Date(2025, 12, 24)), "wednesday")
	assert.False(t, cal.IsBusinessDay(Date(2025, 12, 25)), "holiday")
	assert.True(t, cal.IsBusinessDay(Date(2025, 12, 26)), "friday")
	assert.False(t, cal.IsBusinessDay(Date(2025, 12, 27)), "saturday")
	assert.False(t, cal.IsBusinessDay(Date(2025, 12, 28)), "sunday")
	assert.True(t, cal.IsBusinessDay(Date(2025, 12, 29)), "monday")
}

func TestIsBusinessDay_IgnoresTimeOfDay(t *testing.T) {
	cal := New("us", []time.Time{Date(2025, 12, 25)})
	evening := time.Date(2025, 12, 25, 22, 30, 0, 0, time.UTC)
	assert.False(t, cal.IsBusinessDay(evening))
}

func TestAddBusinessDays_SkipsWeekend(t *testing.T) {
	cal := New("none", nil)
	got := cal.AddBusinessDays(Date(2025, 12, 26), 1)
	assert.Equal(t, Date(2025, 12, 29), got)
}

func TestAddBusinessDays_ZeroDoesNotSnap(t *testing.T) {
	cal := New("none", nil)
	saturday := Date(2025, 12, 27)
	assert.Equal(t, saturday, cal.AddBusinessDays(saturday, 0))
	assert.Equal(t, saturday, cal.SubtractBusinessDays(saturday, 0))
}

func TestSubtractBusinessDays_WeekendsOnly(t *testing.T) {
	cal := New("none", nil)
	got := cal.SubtractBusinessDays(Date(2025, 12, 31), 10)
	assert.Equal(t, Date(2025, 12, 17), got)
}

func TestSubtractBusinessDays_SkipsHolidays(t *testing.T) {
	cal := New("uk", []time.Time{Date(2025, 12, 25), Date(2025, 12, 26)})
	got := cal.SubtractBusinessDays(Date(2025, 12, 31), 3)
	assert.Equal(t, Date(2025, 12, 24), got)
}

func TestAddBusinessDays_NegativeWalksBackward(t *testing.T) {
	cal := New("none", nil)
	assert.Equal(t, cal.SubtractBusinessDays(Date(2025, 12, 31), 4), cal.AddBusinessDays(Date(2025, 12, 31), -4))
	assert.Equal(t, cal.AddBusinessDays(Date(2025, 12, 31), 4), cal.SubtractBusinessDays(Date(2025, 12, 31), -4))
}

func TestOffset_Signed(t *testing.T) {
	cal := New("none", nil)
	goal := Date(2025, 12, 31)
	assert.Equal(t, Date(2025, 12, 17), cal.Offset(goal, -10))
	assert.Equal(t, Date(2026, 1, 2), cal.Offset(goal, 2))
	assert.Equal(t, goal, cal.Offset(goal, 0))
}

func TestBusinessDaysBetween(t *testing.T) {
	cal := New("none", nil)
	assert.Equal(t, 10, cal.BusinessDaysBetween(Date(2025, 12, 17), Date(2025, 12, 31)))
	assert.Equal(t, -10, cal.BusinessDaysBetween(Date(2025, 12, 31), Date(2025, 12, 17)))
	assert.Equal(t, 0, cal.BusinessDaysBetween(Date(2025, 12, 27), Date(2025, 12, 28)))
}

// TestAddSubtract_RoundTrip property-tests that subtracting what was added
// returns to a business-day start.
func TestAddSubtract_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cal := New("x", []time.Time{
		Date(2026, 1, 1), Date(2026, 5, 25), Date(2026, 7, 3), Date(2026, 11, 26), Date(2026, 12, 25),
	})

	for trial := 0; trial < 500; trial++ {
		start := Date(2026, 1, 1).AddDate(0, 0, rng.Intn(365))
		for !cal.IsBusinessDay(start) {
			start = start.AddDate(0, 0, 1)
		}
		n := rng.Intn(40)

		forward := cal.AddBusinessDays(start, n)
		back := cal.SubtractBusinessDays(forward, n)
		require.Equal(t, start, back, "trial %d: start=%s n=%d", trial, start.Format(DateLayout), n)
		assert.Equal(t, n, cal.BusinessDaysBetween(start, forward), "trial %d", trial)
	}
}

func TestAddBusinessDays_IdentityForAnyDay(t *testing.T) {
	cal := New("x", []time.Time{Date(2026, 1, 1)})
	for i := 0; i < 30; i++ {
		d := Date(2025, 12, 20).AddDate(0, 0, i)
		assert.Equal(t, d, cal.AddBusinessDays(d, 0))
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, 12, 31), d)

	_, err = ParseDate("31/12/2025")
	assert.Error(t, err)
}
