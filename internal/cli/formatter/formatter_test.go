package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "TITLE"}, [][]string{
		{"A", "Collect documents"},
		{"LONGER", "x"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	// Every title cell starts in the same visible column.
	col := strings.Index(lines[0], "TITLE")
	assert.Equal(t, col, strings.Index(lines[2], "Collect"))
	assert.Equal(t, col, lipgloss.Width(lines[3])-1)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestShift(t *testing.T) {
	old := date(2025, time.December, 17)
	assert.Contains(t, Shift(&old, date(2026, time.January, 16)), "+30d")
	assert.Contains(t, Shift(&old, date(2025, time.December, 10)), "-7d")
	assert.Contains(t, Shift(&old, old), "·")
	assert.Contains(t, Shift(nil, old), "new")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-12-31", FormatDate(ptr(date(2025, time.December, 31))))
	assert.Contains(t, FormatDate(nil), "—")
}

func exampleTemplate() *domain.Template {
	return &domain.Template{
		ID:      "tmpl-1",
		Name:    "example",
		Version: 2,
		Status:  domain.TemplateActive,
		Steps: []domain.StepDefinition{
			{ID: "A", Sequence: 1, Title: "Collect documents", Basis: domain.BasisGoal, OffsetDays: -10},
			{ID: "B", Sequence: 2, Title: "Review", Basis: domain.BasisPrevious, OffsetDays: 3, DependsOn: []string{"A"}},
		},
	}
}

func TestFormatTemplateShow(t *testing.T) {
	out := FormatTemplateShow(exampleTemplate())
	assert.Contains(t, out, "example")
	assert.Contains(t, out, "v2")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "Collect documents")
	assert.Contains(t, out, "-10")
	assert.Contains(t, out, "+3")
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Contains(t, FormatValidationErrors("t.json", nil), "is valid")

	out := FormatValidationErrors("t.json", []error{errors.New("dependency cycle: A -> B -> A")})
	assert.Contains(t, out, "1 problems")
	assert.Contains(t, out, "dependency cycle: A -> B -> A")
}

func TestFormatReplan_PreviewMarksLockAndCriticalPath(t *testing.T) {
	c := &domain.Case{ID: "case-1", Title: "Jane Doe", GoalDate: date(2025, time.December, 31), CalendarID: "none"}
	plan := &scheduler.Plan{
		GoalDate: date(2026, time.January, 30),
		Entries: []scheduler.PlanEntry{
			{DefinitionID: "A", DueDate: date(2026, time.January, 16)},
			{DefinitionID: "B", DueDate: date(2025, time.December, 22), Locked: true},
		},
		CriticalPath: []string{"A"},
	}
	diffs := []domain.StepDiff{
		{DefinitionID: "A", OldDueDate: ptr(date(2025, time.December, 17)), NewDueDate: date(2026, time.January, 16)},
		{DefinitionID: "B", OldDueDate: ptr(date(2025, time.December, 22)), NewDueDate: date(2025, time.December, 22), IsLocked: true},
	}

	out := FormatReplan(c, exampleTemplate(), plan, diffs, 0, true)
	assert.Contains(t, out, "REPLAN PREVIEW")
	assert.Contains(t, out, "2026-01-30")
	assert.Contains(t, out, "+30d")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "Critical path:")
	assert.Contains(t, out, "1 step(s) would move")

	applied := FormatReplan(c, exampleTemplate(), plan, diffs, 1, false)
	assert.Contains(t, applied, "Applied 1 change(s)")
}

func TestFormatSchedule(t *testing.T) {
	c := &domain.Case{ID: "case-1", Title: "Jane Doe", GoalDate: date(2025, time.December, 31), CalendarID: "us"}
	plan := &scheduler.Plan{
		Entries:      []scheduler.PlanEntry{{DefinitionID: "A"}, {DefinitionID: "B"}},
		CriticalPath: []string{"A", "B"},
	}
	instances := []*domain.StepInstance{
		{DefinitionID: "A", DueDate: ptr(date(2025, time.December, 17)), Locked: true},
		{DefinitionID: "B"},
	}

	out := FormatSchedule(c, exampleTemplate(), instances, plan)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "2025-12-17")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "A → B")
}

func TestFormatCalendarList(t *testing.T) {
	out := FormatCalendarList([]CalendarRow{
		{Calendar: domain.Calendar{ID: "us", Name: "United States"}, HolidayCount: 22, IsDefault: true},
	})
	assert.Contains(t, out, "United States")
	assert.Contains(t, out, "22")
	assert.Contains(t, out, "default")
}
