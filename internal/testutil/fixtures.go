package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/google/uuid"
)

// Date returns midnight UTC for the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Step builds a step definition; basis is "goal" or "prev".
func Step(id string, seq int, basis domain.Basis, offset int, deps ...string) domain.StepDefinition {
	return domain.StepDefinition{
		ID:         id,
		Sequence:   seq,
		Title:      "Step " + id,
		Basis:      basis,
		OffsetDays: offset,
		DependsOn:  deps,
	}
}

// ExampleSteps is the four-step template used across scheduling tests:
// A goal-10, B prev+3 after A, C prev+2 after A, D goal 0 after B and C.
func ExampleSteps() []domain.StepDefinition {
	return []domain.StepDefinition{
		Step("A", 1, domain.BasisGoal, -10),
		Step("B", 2, domain.BasisPrevious, 3, "A"),
		Step("C", 3, domain.BasisPrevious, 2, "A"),
		Step("D", 4, domain.BasisGoal, 0, "B", "C"),
	}
}

// Template options
type TemplateOption func(*domain.Template)

func WithSteps(steps ...domain.StepDefinition) TemplateOption {
	return func(t *domain.Template) {
		t.Steps = steps
	}
}

func WithTemplateStatus(s domain.TemplateStatus) TemplateOption {
	return func(t *domain.Template) {
		t.Status = s
	}
}

func WithVersion(v int) TemplateOption {
	return func(t *domain.Template) {
		t.Version = v
	}
}

// NewTestTemplate returns an active template holding ExampleSteps unless
// overridden.
func NewTestTemplate(name string, opts ...TemplateOption) *domain.Template {
	t := &domain.Template{
		ID:        uuid.New().String(),
		Name:      name,
		Version:   1,
		Status:    domain.TemplateActive,
		Steps:     ExampleSteps(),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	for i := range t.Steps {
		t.Steps[i].TemplateID = t.ID
	}
	return t
}

// Case options
type CaseOption func(*domain.Case)

func WithGoalDate(d time.Time) CaseOption {
	return func(c *domain.Case) {
		c.GoalDate = d
	}
}

func WithCalendar(id string) CaseOption {
	return func(c *domain.Case) {
		c.CalendarID = id
	}
}

func NewTestCase(templateID, title string, opts ...CaseOption) *domain.Case {
	now := time.Now().UTC()
	c := &domain.Case{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		Title:      title,
		GoalDate:   Date(2025, time.December, 31),
		CalendarID: "none",
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step instance options
type InstanceOption func(*domain.StepInstance)

func WithDueDate(d time.Time) InstanceOption {
	return func(s *domain.StepInstance) {
		s.DueDate = &d
	}
}

func WithLocked() InstanceOption {
	return func(s *domain.StepInstance) {
		s.Locked = true
	}
}

func NewTestInstance(caseID, definitionID string, opts ...InstanceOption) *domain.StepInstance {
	s := &domain.StepInstance{
		ID:           uuid.New().String(),
		CaseID:       caseID,
		DefinitionID: definitionID,
		UpdatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedCalendar stores a calendar with the given holidays.
func SeedCalendar(t *testing.T, database *sql.DB, id string, holidays ...time.Time) {
	t.Helper()
	ctx := context.Background()
	if _, err := database.ExecContext(ctx,
		`INSERT INTO calendars (id, name) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, id, id); err != nil {
		t.Fatalf("seeding calendar %s: %v", id, err)
	}
	for _, h := range holidays {
		if _, err := database.ExecContext(ctx,
			`INSERT OR REPLACE INTO holidays (calendar_id, date, name) VALUES (?, ?, 'holiday')`,
			id, h.Format("2006-01-02")); err != nil {
			t.Fatalf("seeding holiday for %s: %v", id, err)
		}
	}
}
