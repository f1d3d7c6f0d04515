package scheduler

import (
	"testing"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractCriticalPath_TieBreaksOnLowestID(t *testing.T) {
	defs := []domain.StepDefinition{
		step("root", 1, domain.BasisGoal, -10),
		step("zeta", 2, domain.BasisPrevious, 2, "root"),
		step("alpha", 3, domain.BasisPrevious, 2, "root"),
		step("end", 4, domain.BasisGoal, 0, "zeta", "alpha"),
	}
	plan := &Plan{Entries: []PlanEntry{
		{DefinitionID: "root", DueDate: d(2026, 3, 2)},
		{DefinitionID: "zeta", DueDate: d(2026, 3, 4)},
		{DefinitionID: "alpha", DueDate: d(2026, 3, 4)},
		{DefinitionID: "end", DueDate: d(2026, 3, 16)},
	}}

	assert.Equal(t, []string{"root", "alpha", "end"}, ExtractCriticalPath(plan, defs))
}

func TestExtractCriticalPath_LatestGoalStepAnchorsTheWalk(t *testing.T) {
	defs := []domain.StepDefinition{
		step("early", 1, domain.BasisGoal, -5),
		step("late", 2, domain.BasisGoal, 3, "early"),
		step("after", 3, domain.BasisPrevious, 10, "late"),
	}
	plan := &Plan{Entries: []PlanEntry{
		{DefinitionID: "early", DueDate: d(2026, 3, 2)},
		{DefinitionID: "late", DueDate: d(2026, 3, 12)},
		{DefinitionID: "after", DueDate: d(2026, 3, 26)},
	}}

	// "after" is later but prev-based; the path ends at the latest goal step.
	assert.Equal(t, []string{"early", "late"}, ExtractCriticalPath(plan, defs))
}

func TestExtractCriticalPath_FollowsImplicitPredecessor(t *testing.T) {
	defs := []domain.StepDefinition{
		step("a", 1, domain.BasisGoal, -6),
		step("b", 2, domain.BasisPrevious, 2),
		step("c", 3, domain.BasisGoal, 0, "b"),
	}
	plan := &Plan{Entries: []PlanEntry{
		{DefinitionID: "a", DueDate: d(2026, 3, 2)},
		{DefinitionID: "b", DueDate: d(2026, 3, 4), AnchorID: "a"},
		{DefinitionID: "c", DueDate: d(2026, 3, 10)},
	}}

	assert.Equal(t, []string{"a", "b", "c"}, ExtractCriticalPath(plan, defs))
}

func TestExtractCriticalPath_Empty(t *testing.T) {
	assert.Nil(t, ExtractCriticalPath(nil, nil))
	assert.Nil(t, ExtractCriticalPath(&Plan{}, nil))
}
