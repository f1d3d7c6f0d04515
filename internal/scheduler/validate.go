package scheduler

import (
	"errors"
	"sort"

	"github.com/alexanderramin/casetrack/internal/domain"
)

const dateLayout = "2006-01-02"

// Validate checks that step ids are unique, offsets stay within
// domain.MaxOffsetDays, every depends_on entry names a step of the same
// template, and the dependency graph is acyclic. Offset and reference errors
// are reported together; cycle detection only runs once they are clean.
func Validate(defs []domain.StepDefinition) error {
	known := make(map[string]bool, len(defs))
	for _, d := range defs {
		if known[d.ID] {
			return &DuplicateStepError{StepID: d.ID}
		}
		known[d.ID] = true
	}

	var errs []error
	for _, d := range sortedByID(defs) {
		if d.OffsetDays > domain.MaxOffsetDays || d.OffsetDays < -domain.MaxOffsetDays {
			errs = append(errs, &OffsetRangeError{StepID: d.ID, OffsetDays: d.OffsetDays})
		}
		for _, dep := range sortedUnique(d.DependsOn) {
			if !known[dep] {
				errs = append(errs, &DanglingReferenceError{StepID: d.ID, MissingRef: dep})
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if path := findCycle(defs); path != nil {
		return &CycleError{Path: path}
	}
	return nil
}

// findCycle runs a depth-first walk along depends_on edges with a
// visiting/visited marking. The first back-edge found yields the cycle.
// Steps and edges are visited in id order so the reported cycle is stable.
func findCycle(defs []domain.StepDefinition) []string {
	const (
		unvisited = iota
		visiting
		visited
	)

	deps := make(map[string][]string, len(defs))
	for _, d := range defs {
		deps[d.ID] = sortedUnique(d.DependsOn)
	}

	state := make(map[string]int, len(defs))
	pos := make(map[string]int, len(defs))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = visiting
		pos[id] = len(stack)
		stack = append(stack, id)
		for _, dep := range deps[id] {
			switch state[dep] {
			case visiting:
				return append([]string(nil), stack[pos[dep]:]...)
			case unvisited:
				if _, ok := deps[dep]; !ok {
					continue
				}
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = visited
		return nil
	}

	for _, d := range sortedByID(defs) {
		if state[d.ID] == unvisited {
			if cycle := visit(d.ID); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

func sortedByID(defs []domain.StepDefinition) []domain.StepDefinition {
	out := append([]domain.StepDefinition(nil), defs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedUnique(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
