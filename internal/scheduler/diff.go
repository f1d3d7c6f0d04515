package scheduler

import (
	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
)

// Diff compares a new plan with the materialized instances, one record per
// plan entry. It never mutates the instances. A locked entry whose date would
// change returns an InvariantViolationError instead of a diff.
func Diff(plan *Plan, existing map[string]*domain.StepInstance, locked map[string]bool) ([]domain.StepDiff, error) {
	diffs := make([]domain.StepDiff, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		d := domain.StepDiff{
			DefinitionID: e.DefinitionID,
			NewDueDate:   e.DueDate,
		}
		if inst, ok := existing[e.DefinitionID]; ok && inst != nil {
			d.StepID = inst.ID
			if inst.DueDate != nil {
				old := calendar.Normalize(*inst.DueDate)
				d.OldDueDate = &old
			}
			d.IsLocked = locked[inst.ID]
		}

		if d.IsLocked && (d.OldDueDate == nil || !d.OldDueDate.Equal(d.NewDueDate)) {
			return nil, &InvariantViolationError{
				StepID:       d.StepID,
				DefinitionID: d.DefinitionID,
				OldDueDate:   d.OldDueDate,
				NewDueDate:   d.NewDueDate,
			}
		}
		diffs = append(diffs, d)
	}
	return diffs, nil
}

// Applicable filters diffs down to the unlocked entries whose date changes.
func Applicable(diffs []domain.StepDiff) []domain.StepDiff {
	var out []domain.StepDiff
	for _, d := range diffs {
		if !d.IsLocked && d.Changed() {
			out = append(out, d)
		}
	}
	return out
}
