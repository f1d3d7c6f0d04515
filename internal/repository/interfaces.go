package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
)

type TemplateRepo interface {
	// Create stores the template together with its step definitions.
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	GetLatest(ctx context.Context, name string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	NextVersion(ctx context.Context, name string) (int, error)
	SetStatus(ctx context.Context, id string, status domain.TemplateStatus) error
}

type CaseRepo interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	List(ctx context.Context) ([]*domain.Case, error)
	// UpdateSchedule writes goal date and calendar and bumps the version. It
	// fails with domain.ErrStaleCase when the stored version differs from
	// expectedVersion.
	UpdateSchedule(ctx context.Context, c *domain.Case, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

type StepInstanceRepo interface {
	Create(ctx context.Context, s *domain.StepInstance) error
	GetByID(ctx context.Context, id string) (*domain.StepInstance, error)
	ListByCase(ctx context.Context, caseID string) ([]*domain.StepInstance, error)
	UpdateDueDate(ctx context.Context, id string, due time.Time) error
	SetLocked(ctx context.Context, id string, locked bool) error
}

type CalendarRepo interface {
	calendar.Source
	Upsert(ctx context.Context, c domain.Calendar) error
	ReplaceHolidays(ctx context.Context, calendarID string, holidays []domain.Holiday) error
	List(ctx context.Context) ([]domain.Calendar, error)
	ListHolidays(ctx context.Context, calendarID string) ([]domain.Holiday, error)
	AddHoliday(ctx context.Context, h domain.Holiday) error
}
