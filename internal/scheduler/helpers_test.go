package scheduler

import (
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
)

func step(id string, seq int, basis domain.Basis, offset int, deps ...string) domain.StepDefinition {
	return domain.StepDefinition{
		ID:         id,
		Sequence:   seq,
		Title:      "Step " + id,
		Basis:      basis,
		OffsetDays: offset,
		DependsOn:  deps,
	}
}

// exampleTemplate is A(goal -10), B(prev +3 on A), C(prev +2 on A), D(goal 0 on B, C).
func exampleTemplate() []domain.StepDefinition {
	return []domain.StepDefinition{
		step("A", 1, domain.BasisGoal, -10),
		step("B", 2, domain.BasisPrevious, 3, "A"),
		step("C", 3, domain.BasisPrevious, 2, "A"),
		step("D", 4, domain.BasisGoal, 0, "B", "C"),
	}
}

func weekendsOnly() *calendar.Book {
	return calendar.NewBook(calendar.New("none", nil))
}

func d(y int, m time.Month, day int) time.Time {
	return calendar.Date(y, m, day)
}

func instance(id, defID string, due time.Time) *domain.StepInstance {
	return &domain.StepInstance{ID: id, DefinitionID: defID, DueDate: &due}
}

func entryFor(p *Plan, definitionID string) (PlanEntry, bool) {
	for _, e := range p.Entries {
		if e.DefinitionID == definitionID {
			return e, true
		}
	}
	return PlanEntry{}, false
}

func dueDates(p *Plan) map[string]time.Time {
	out := make(map[string]time.Time, len(p.Entries))
	for _, e := range p.Entries {
		out[e.DefinitionID] = e.DueDate
	}
	return out
}
