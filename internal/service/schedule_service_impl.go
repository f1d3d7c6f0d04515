package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/repository"
	"github.com/alexanderramin/casetrack/internal/scheduler"
)

type scheduleService struct {
	templates repository.TemplateRepo
	cases     repository.CaseRepo
	steps     repository.StepInstanceRepo
	calendars repository.CalendarRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewScheduleService(
	templates repository.TemplateRepo,
	cases repository.CaseRepo,
	steps repository.StepInstanceRepo,
	calendars repository.CalendarRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		templates: templates,
		cases:     cases,
		steps:     steps,
		calendars: calendars,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// replanState is everything one calculation read, kept for apply and for
// error reports.
type replanState struct {
	c         *domain.Case
	tmpl      *domain.Template
	instances []*domain.StepInstance
	goal      time.Time
	locked    map[string]bool
}

func (s *scheduleService) Preview(ctx context.Context, req ReplanRequest) (res *ReplanResult, err error) {
	fields := replanFields(req)
	defer observe(ctx, s.observer, "replan-preview", fields, &err)()

	res, _, err = s.compute(ctx, req, fields)
	return res, err
}

// Apply computes like Preview, then writes the goal and every changed,
// unlocked date in one transaction. The write fails with STALE_CASE when
// the case changed after it was read.
func (s *scheduleService) Apply(ctx context.Context, req ReplanRequest) (res *ReplanResult, err error) {
	fields := replanFields(req)
	defer observe(ctx, s.observer, "replan-apply", fields, &err)()

	res, st, err := s.compute(ctx, req, fields)
	if err != nil {
		return nil, err
	}

	changes := scheduler.Applicable(res.Diffs)
	updated := *st.c
	updated.GoalDate = st.goal
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCaseRepo(tx).UpdateSchedule(ctx, &updated, st.c.Version); err != nil {
			return err
		}
		txSteps := repository.NewSQLiteStepInstanceRepo(tx)
		for _, d := range changes {
			if err := txSteps.UpdateDueDate(ctx, d.StepID, d.NewDueDate); err != nil {
				return fmt.Errorf("updating step %s: %w", d.DefinitionID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	res.Case = &updated
	res.Applied = len(changes)
	fields["applied"] = res.Applied
	return res, nil
}

func (s *scheduleService) compute(ctx context.Context, req ReplanRequest, fields map[string]any) (*ReplanResult, *replanState, error) {
	st, err := s.load(ctx, req.CaseID)
	if err != nil {
		return nil, nil, err
	}
	if req.GoalDate != nil {
		st.goal = calendar.Normalize(*req.GoalDate)
	}
	for _, ref := range req.LockStepIDs {
		inst, err := findInstance(st.instances, ref)
		if err != nil {
			return nil, nil, err
		}
		st.locked[inst.ID] = true
	}

	plan, diffs, err := s.calculate(ctx, st)
	if err != nil {
		var violation *scheduler.InvariantViolationError
		if errors.As(err, &violation) {
			addStateFields(fields, st, plan)
		}
		return nil, nil, classify(err)
	}

	fields["changed"] = len(scheduler.Applicable(diffs))
	return &ReplanResult{
		Case:     st.c,
		Template: st.tmpl,
		Plan:     plan,
		Diffs:    diffs,
	}, st, nil
}

func (s *scheduleService) calculate(ctx context.Context, st *replanState) (*scheduler.Plan, []domain.StepDiff, error) {
	book, err := loadBook(ctx, s.calendars, st.c.CalendarID, st.tmpl.Steps, st.goal, st.instances)
	if err != nil {
		return nil, nil, err
	}
	existing := instancesByDefinition(st.instances)
	plan, err := scheduler.Calculate(st.tmpl.Steps, scheduler.Request{
		GoalDate:          st.goal,
		CalendarID:        st.c.CalendarID,
		LockedStepIDs:     st.locked,
		ExistingInstances: existing,
	}, book)
	if err != nil {
		return nil, nil, err
	}
	diffs, err := scheduler.Diff(plan, existing, st.locked)
	if err != nil {
		return plan, nil, err
	}
	return plan, diffs, nil
}

func (s *scheduleService) load(ctx context.Context, caseID string) (*replanState, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, classify(err)
	}
	tmpl, err := s.templates.GetByID(ctx, c.TemplateID)
	if err != nil {
		return nil, classify(err)
	}
	instances, err := s.steps.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	var locked []string
	for _, inst := range instances {
		if inst.Locked {
			locked = append(locked, inst.ID)
		}
	}
	return &replanState{
		c:         c,
		tmpl:      tmpl,
		instances: instances,
		goal:      c.GoalDate,
		locked:    scheduler.LockedSet(locked...),
	}, nil
}

func (s *scheduleService) Lock(ctx context.Context, caseID, step string) (*domain.StepInstance, error) {
	return s.setLocked(ctx, caseID, step, true)
}

func (s *scheduleService) Unlock(ctx context.Context, caseID, step string) (*domain.StepInstance, error) {
	return s.setLocked(ctx, caseID, step, false)
}

func (s *scheduleService) setLocked(ctx context.Context, caseID, step string, locked bool) (inst *domain.StepInstance, err error) {
	name := "unlock-step"
	if locked {
		name = "lock-step"
	}
	defer observe(ctx, s.observer, name, map[string]any{"case": caseID, "step": step}, &err)()

	instances, err := s.steps.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	inst, err = findInstance(instances, step)
	if err != nil {
		return nil, err
	}
	if locked && inst.DueDate == nil {
		return nil, &ScheduleError{
			Code:    ErrCodeScheduleConflict,
			Message: fmt.Sprintf("step %s has no due date to lock", inst.DefinitionID),
		}
	}
	if err := s.steps.SetLocked(ctx, inst.ID, locked); err != nil {
		return nil, classify(err)
	}
	inst.Locked = locked
	return inst, nil
}

func (s *scheduleService) View(ctx context.Context, caseID string) (*ScheduleView, error) {
	st, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	plan, _, err := s.calculate(ctx, st)
	if err != nil {
		return nil, classify(err)
	}
	return &ScheduleView{Case: st.c, Template: st.tmpl, Instances: st.instances, Plan: plan}, nil
}

// findInstance matches an instance id first, then a definition id.
func findInstance(instances []*domain.StepInstance, ref string) (*domain.StepInstance, error) {
	ref = strings.TrimSpace(ref)
	for _, inst := range instances {
		if inst.ID == ref {
			return inst, nil
		}
	}
	for _, inst := range instances {
		if inst.DefinitionID == ref {
			return inst, nil
		}
	}
	return nil, &ScheduleError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("step %q not found in case", ref),
		Err:     domain.ErrNotFound,
	}
}

func replanFields(req ReplanRequest) map[string]any {
	trigger := req.Trigger
	if trigger == "" {
		trigger = domain.TriggerManual
		if req.GoalDate != nil {
			trigger = domain.TriggerGoalChanged
		}
	}
	return map[string]any{"case": req.CaseID, "trigger": string(trigger)}
}

// addStateFields records the full calculation input so a broken lock
// invariant can be reproduced from the log line.
func addStateFields(fields map[string]any, st *replanState, plan *scheduler.Plan) {
	locked := make([]string, 0, len(st.locked))
	for id := range st.locked {
		locked = append(locked, id)
	}
	sort.Strings(locked)

	existing := make([]string, 0, len(st.instances))
	for _, inst := range st.instances {
		due := "none"
		if inst.DueDate != nil {
			due = inst.DueDate.Format(calendar.DateLayout)
		}
		existing = append(existing, fmt.Sprintf("%s=%s", inst.DefinitionID, due))
	}

	fields["goal_date"] = st.goal.Format(calendar.DateLayout)
	fields["calendar"] = st.c.CalendarID
	fields["locked"] = strings.Join(locked, ",")
	fields["existing"] = strings.Join(existing, ",")
	if plan != nil {
		planned := make([]string, 0, len(plan.Entries))
		for _, e := range plan.Entries {
			planned = append(planned, fmt.Sprintf("%s=%s", e.DefinitionID, e.DueDate.Format(calendar.DateLayout)))
		}
		fields["plan"] = strings.Join(planned, ",")
	}
}
