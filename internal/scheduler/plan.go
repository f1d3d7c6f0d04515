package scheduler

import (
	"time"

	"github.com/alexanderramin/casetrack/internal/domain"
)

// Request is the input to one schedule calculation.
type Request struct {
	GoalDate   time.Time
	CalendarID string
	// LockedStepIDs holds StepInstance ids whose dates are preserved verbatim.
	LockedStepIDs map[string]bool
	// ExistingInstances maps definition id to the materialized instance. Nil on
	// a first computation.
	ExistingInstances map[string]*domain.StepInstance
}

// LockedSet builds a lock set from instance ids.
func LockedSet(ids ...string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// PlanEntry is the computed date for one definition.
type PlanEntry struct {
	DefinitionID string
	DueDate      time.Time
	Locked       bool
	// AnchorID is the predecessor a prev-basis step without explicit
	// dependencies was measured from. Empty when the goal date was used.
	AnchorID string
}

// Plan is the full date assignment, in calculation order.
type Plan struct {
	GoalDate     time.Time
	CalendarID   string
	Entries      []PlanEntry
	CriticalPath []string
}

// IsCritical reports whether a definition lies on the critical path.
func (p *Plan) IsCritical(definitionID string) bool {
	for _, id := range p.CriticalPath {
		if id == definitionID {
			return true
		}
	}
	return false
}
