package scheduler

import (
	"sort"

	"github.com/alexanderramin/casetrack/internal/domain"
)

// TopologicalOrder orders definitions so every step follows all of its
// depends_on predecessors. Among steps that are ready at the same time the
// lower sequence goes first, then the lower id.
func TopologicalOrder(defs []domain.StepDefinition) ([]domain.StepDefinition, error) {
	byID := make(map[string]domain.StepDefinition, len(defs))
	pending := make(map[string]int, len(defs))
	successors := make(map[string][]string, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	for _, d := range defs {
		for _, dep := range sortedUnique(d.DependsOn) {
			if _, ok := byID[dep]; !ok {
				return nil, &DanglingReferenceError{StepID: d.ID, MissingRef: dep}
			}
			pending[d.ID]++
			successors[dep] = append(successors[dep], d.ID)
		}
	}

	var ready []domain.StepDefinition
	for _, d := range defs {
		if pending[d.ID] == 0 {
			ready = append(ready, d)
		}
	}

	order := make([]domain.StepDefinition, 0, len(defs))
	for len(ready) > 0 {
		sortReady(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, succ := range successors[next.ID] {
			pending[succ]--
			if pending[succ] == 0 {
				ready = append(ready, byID[succ])
			}
		}
	}

	if len(order) != len(defs) {
		if path := findCycle(defs); path != nil {
			return nil, &CycleError{Path: path}
		}
		return nil, &CycleError{}
	}
	return order, nil
}

func sortReady(ready []domain.StepDefinition) {
	sort.SliceStable(ready, func(i, j int) bool {
		if ready[i].Sequence != ready[j].Sequence {
			return ready[i].Sequence < ready[j].Sequence
		}
		return ready[i].ID < ready[j].ID
	})
}
