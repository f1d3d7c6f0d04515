package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
)

// Calculate assigns a due date to every definition.
//
// Steps are processed in topological order. A locked step copies its existing
// date and is otherwise ignored. A goal-basis step is offset from the goal
// date. A prev-basis step is offset from the latest date among its
// depends_on predecessors or, without explicit dependencies, from the
// already-dated step with the closest lower sequence (the goal date if there
// is none). The full plan is recomputed on every call.
func Calculate(defs []domain.StepDefinition, req Request, cals *calendar.Book) (*Plan, error) {
	cal, err := cals.Get(req.CalendarID)
	if err != nil {
		return nil, err
	}
	if err := Validate(defs); err != nil {
		return nil, fmt.Errorf("invalid step graph: %w", err)
	}
	order, err := TopologicalOrder(defs)
	if err != nil {
		return nil, err
	}

	goal := calendar.Normalize(req.GoalDate)
	plan := &Plan{
		GoalDate:   goal,
		CalendarID: req.CalendarID,
		Entries:    make([]PlanEntry, 0, len(order)),
	}

	dates := make(map[string]time.Time, len(order))
	var assigned []domain.StepDefinition

	for _, def := range order {
		entry := PlanEntry{DefinitionID: def.ID}
		if def.Basis == domain.BasisPrevious && len(def.DependsOn) == 0 {
			if anchor, ok := implicitPredecessor(def, assigned); ok {
				entry.AnchorID = anchor.ID
			}
		}

		locked, err := lockedDate(def, req)
		if err != nil {
			return nil, err
		}

		switch {
		case locked != nil:
			entry.DueDate = *locked
			entry.Locked = true
		case def.Basis == domain.BasisGoal:
			entry.DueDate = cal.Offset(goal, def.OffsetDays)
		case def.Basis == domain.BasisPrevious:
			anchor := goal
			if len(def.DependsOn) > 0 {
				anchor = latestOf(def.DependsOn, dates)
			} else if entry.AnchorID != "" {
				anchor = dates[entry.AnchorID]
			}
			entry.DueDate = cal.AddBusinessDays(anchor, def.OffsetDays)
		default:
			return nil, fmt.Errorf("step %q: %w: %q", def.ID, domain.ErrUnknownBasis, def.Basis)
		}

		dates[def.ID] = entry.DueDate
		assigned = append(assigned, def)
		plan.Entries = append(plan.Entries, entry)
	}

	if err := checkLockConflicts(plan, defs); err != nil {
		return nil, err
	}

	plan.CriticalPath = ExtractCriticalPath(plan, defs)
	return plan, nil
}

func lockedDate(def domain.StepDefinition, req Request) (*time.Time, error) {
	inst, ok := req.ExistingInstances[def.ID]
	if !ok || inst == nil || !req.LockedStepIDs[inst.ID] {
		return nil, nil
	}
	if inst.DueDate == nil {
		return nil, &UnscheduledLockError{StepID: def.ID, InstanceID: inst.ID}
	}
	d := calendar.Normalize(*inst.DueDate)
	return &d, nil
}

// implicitPredecessor picks, among steps already dated in this pass, the one
// with the highest sequence below def's. Equal sequences resolve to the lower id.
func implicitPredecessor(def domain.StepDefinition, assigned []domain.StepDefinition) (domain.StepDefinition, bool) {
	var best domain.StepDefinition
	found := false
	for _, a := range assigned {
		if a.Sequence >= def.Sequence {
			continue
		}
		if !found || a.Sequence > best.Sequence || (a.Sequence == best.Sequence && a.ID < best.ID) {
			best = a
			found = true
		}
	}
	return best, found
}

func latestOf(ids []string, dates map[string]time.Time) time.Time {
	var latest time.Time
	for i, id := range ids {
		d := dates[id]
		if i == 0 || d.After(latest) {
			latest = d
		}
	}
	return latest
}

// checkLockConflicts rejects plans where a locked step postdates a computed
// step that depends on it, explicitly or through its implicit predecessor.
func checkLockConflicts(plan *Plan, defs []domain.StepDefinition) error {
	entries := make(map[string]PlanEntry, len(plan.Entries))
	for _, e := range plan.Entries {
		entries[e.DefinitionID] = e
	}
	byID := make(map[string]domain.StepDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	for _, e := range plan.Entries {
		if e.Locked {
			continue
		}
		for _, predID := range predecessors(byID[e.DefinitionID], e) {
			pred := entries[predID]
			if pred.Locked && pred.DueDate.After(e.DueDate) {
				return &ScheduleConflictError{
					LockedStepID:    pred.DefinitionID,
					DependentStepID: e.DefinitionID,
					LockedDate:      pred.DueDate,
					DependentDate:   e.DueDate,
				}
			}
		}
	}
	return nil
}

// predecessors returns the explicit dependencies of a step or, for a
// prev-basis step without any, the implicit predecessor it was anchored to.
func predecessors(def domain.StepDefinition, e PlanEntry) []string {
	if len(def.DependsOn) > 0 {
		return sortedUnique(def.DependsOn)
	}
	if e.AnchorID != "" {
		return []string{e.AnchorID}
	}
	return nil
}
