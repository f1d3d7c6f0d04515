package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/repository"
	"github.com/alexanderramin/casetrack/internal/scheduler"
	"github.com/google/uuid"
)

type caseService struct {
	templates       TemplateService
	cases           repository.CaseRepo
	calendars       repository.CalendarRepo
	uow             db.UnitOfWork
	defaultCalendar string
	observer        UseCaseObserver
}

func NewCaseService(
	templates TemplateService,
	cases repository.CaseRepo,
	calendars repository.CalendarRepo,
	uow db.UnitOfWork,
	defaultCalendar string,
	observers ...UseCaseObserver,
) CaseService {
	return &caseService{
		templates:       templates,
		cases:           cases,
		calendars:       calendars,
		uow:             uow,
		defaultCalendar: defaultCalendar,
		observer:        useCaseObserverOrNoop(observers),
	}
}

// Create instantiates an active template and stores the case with its first
// schedule in one transaction.
func (s *caseService) Create(ctx context.Context, req CreateCaseRequest) (res *CaseResult, err error) {
	fields := map[string]any{"template": req.TemplateRef, "trigger": string(domain.TriggerInstantiate)}
	defer observe(ctx, s.observer, "create-case", fields, &err)()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("case title is required")
	}
	if req.GoalDate.IsZero() {
		return nil, fmt.Errorf("goal date is required")
	}
	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = s.defaultCalendar
	}
	fields["calendar"] = calendarID

	tmpl, err := s.templates.Get(ctx, req.TemplateRef)
	if err != nil {
		return nil, err
	}
	if tmpl.Status != domain.TemplateActive {
		return nil, &ScheduleError{
			Code:    ErrCodeTemplateInactive,
			Message: fmt.Sprintf("template %s v%d is %s; activate it first", tmpl.Name, tmpl.Version, tmpl.Status),
		}
	}

	goal := calendar.Normalize(req.GoalDate)
	book, err := loadBook(ctx, s.calendars, calendarID, tmpl.Steps, goal, nil)
	if err != nil {
		return nil, classify(err)
	}
	plan, err := scheduler.Calculate(tmpl.Steps, scheduler.Request{
		GoalDate:   goal,
		CalendarID: calendarID,
	}, book)
	if err != nil {
		return nil, classify(err)
	}

	now := time.Now().UTC()
	c := &domain.Case{
		ID:         uuid.New().String(),
		TemplateID: tmpl.ID,
		Title:      title,
		GoalDate:   goal,
		CalendarID: calendarID,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	instances := make([]*domain.StepInstance, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		due := e.DueDate
		instances = append(instances, &domain.StepInstance{
			ID:           uuid.New().String(),
			CaseID:       c.ID,
			DefinitionID: e.DefinitionID,
			DueDate:      &due,
			UpdatedAt:    now,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCaseRepo(tx).Create(ctx, c); err != nil {
			return fmt.Errorf("creating case: %w", err)
		}
		txSteps := repository.NewSQLiteStepInstanceRepo(tx)
		for _, inst := range instances {
			if err := txSteps.Create(ctx, inst); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["case"] = c.ID
	fields["step_count"] = len(instances)
	return &CaseResult{Case: c, Template: tmpl, Instances: instances, Plan: plan}, nil
}

func (s *caseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

func (s *caseService) List(ctx context.Context) ([]*domain.Case, error) {
	return s.cases.List(ctx)
}

func (s *caseService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-case", map[string]any{"case": id}, &err)()
	return classify(s.cases.Delete(ctx, id))
}
