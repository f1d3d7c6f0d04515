package service

import (
	"context"
	"time"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/scheduler"
	"github.com/alexanderramin/casetrack/internal/template"
)

type TemplateService interface {
	// Import stores a template file as a new draft version.
	Import(ctx context.Context, path string) (*domain.Template, error)
	ImportSchema(ctx context.Context, schema *template.TemplateSchema) (*domain.Template, error)
	// ValidateFile checks a template file without storing it.
	ValidateFile(path string) []error
	List(ctx context.Context) ([]*domain.Template, error)
	// Get resolves a template id, or a name to its latest version.
	Get(ctx context.Context, ref string) (*domain.Template, error)
	Activate(ctx context.Context, ref string) (*domain.Template, error)
}

// CreateCaseRequest describes a new case. CalendarID falls back to the
// service's default calendar when empty.
type CreateCaseRequest struct {
	TemplateRef string
	Title       string
	GoalDate    time.Time
	CalendarID  string
}

// CaseResult is a case with its step instances and the plan that dated them.
type CaseResult struct {
	Case      *domain.Case
	Template  *domain.Template
	Instances []*domain.StepInstance
	Plan      *scheduler.Plan
}

type CaseService interface {
	Create(ctx context.Context, req CreateCaseRequest) (*CaseResult, error)
	Get(ctx context.Context, id string) (*domain.Case, error)
	List(ctx context.Context) ([]*domain.Case, error)
	Delete(ctx context.Context, id string) error
}

// ReplanRequest asks for a new schedule for one case. GoalDate, when set,
// replaces the case's goal. LockStepIDs adds instance ids to the stored locks
// for this run only.
type ReplanRequest struct {
	CaseID      string
	GoalDate    *time.Time
	LockStepIDs []string
	Trigger     domain.ReplanTrigger
}

// ReplanResult holds the computed plan, one diff per step, and how many
// step dates were written (zero for a preview).
type ReplanResult struct {
	Case     *domain.Case
	Template *domain.Template
	Plan     *scheduler.Plan
	Diffs    []domain.StepDiff
	Applied  int
}

// ScheduleView is a case's persisted schedule next to a fresh calculation.
type ScheduleView struct {
	Case      *domain.Case
	Template  *domain.Template
	Instances []*domain.StepInstance
	Plan      *scheduler.Plan
}

type ScheduleService interface {
	Preview(ctx context.Context, req ReplanRequest) (*ReplanResult, error)
	Apply(ctx context.Context, req ReplanRequest) (*ReplanResult, error)
	// Lock and Unlock take a step instance id or a definition id of the case.
	Lock(ctx context.Context, caseID, step string) (*domain.StepInstance, error)
	Unlock(ctx context.Context, caseID, step string) (*domain.StepInstance, error)
	View(ctx context.Context, caseID string) (*ScheduleView, error)
}

// CalendarSummary is a stored calendar and its holiday count.
type CalendarSummary struct {
	Calendar     domain.Calendar
	HolidayCount int
}

type CalendarService interface {
	// Import replaces a calendar and its holidays from a YAML holiday file.
	Import(ctx context.Context, path string) (*CalendarSummary, error)
	List(ctx context.Context) ([]CalendarSummary, error)
	// Ensure creates an empty calendar when id is not stored yet.
	Ensure(ctx context.Context, id, name string) error
	AddHoliday(ctx context.Context, h domain.Holiday) error
	IsBusinessDay(ctx context.Context, calendarID string, d time.Time) (bool, error)
	// AddBusinessDays moves n business days from d; negative n moves backward.
	AddBusinessDays(ctx context.Context, calendarID string, d time.Time, n int) (time.Time, error)
	// BusinessDaysBetween counts business days in (from, to], negative when
	// to precedes from.
	BusinessDaysBetween(ctx context.Context, calendarID string, from, to time.Time) (int, error)
}
