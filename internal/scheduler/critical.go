package scheduler

import (
	"github.com/alexanderramin/casetrack/internal/domain"
)

// ExtractCriticalPath returns the chain of steps that binds the latest
// goal-basis step, ordered from a root (a step without predecessors) to that
// step.
//
// The walk starts at the goal-basis step with the latest due date and moves
// backward, at each step following the predecessor with the latest due date.
// Ties go to the lower id. When the template has no goal-basis step the
// latest-dated step of any basis is used as the end of the path.
func ExtractCriticalPath(plan *Plan, defs []domain.StepDefinition) []string {
	if plan == nil || len(plan.Entries) == 0 {
		return nil
	}

	byID := make(map[string]domain.StepDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	entries := make(map[string]PlanEntry, len(plan.Entries))
	for _, e := range plan.Entries {
		entries[e.DefinitionID] = e
	}

	end, ok := latestEntry(plan.Entries, func(e PlanEntry) bool {
		d, known := byID[e.DefinitionID]
		return known && d.Basis == domain.BasisGoal
	})
	if !ok {
		end, ok = latestEntry(plan.Entries, func(PlanEntry) bool { return true })
		if !ok {
			return nil
		}
	}

	var reversed []string
	seen := make(map[string]bool)
	cur := end
	for {
		reversed = append(reversed, cur.DefinitionID)
		seen[cur.DefinitionID] = true

		var candidates []PlanEntry
		for _, id := range predecessors(byID[cur.DefinitionID], cur) {
			if e, ok := entries[id]; ok && !seen[id] {
				candidates = append(candidates, e)
			}
		}
		next, ok := latestEntry(candidates, func(PlanEntry) bool { return true })
		if !ok {
			break
		}
		cur = next
	}

	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

func latestEntry(entries []PlanEntry, keep func(PlanEntry) bool) (PlanEntry, bool) {
	var best PlanEntry
	found := false
	for _, e := range entries {
		if !keep(e) {
			continue
		}
		if !found || e.DueDate.After(best.DueDate) ||
			(e.DueDate.Equal(best.DueDate) && e.DefinitionID < best.DefinitionID) {
			best = e
			found = true
		}
	}
	return best, found
}
