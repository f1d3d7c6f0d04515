package domain

import "fmt"

// Basis selects what a step's offset is measured from.
type Basis string

const (
	BasisGoal     Basis = "goal"
	BasisPrevious Basis = "prev"
)

// ParseBasis decodes a stored or user-supplied basis value. Only the exact
// spellings "goal" and "prev" are accepted.
func ParseBasis(s string) (Basis, error) {
	if b := Basis(s); b.Valid() {
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBasis, s)
}

func (b Basis) Valid() bool {
	return b == BasisGoal || b == BasisPrevious
}

// MaxOffsetDays bounds |offset_days| on a step and any single business-day
// walk.
const MaxOffsetDays = 3650

type TemplateStatus string

const (
	TemplateDraft   TemplateStatus = "draft"
	TemplateActive  TemplateStatus = "active"
	TemplateRetired TemplateStatus = "retired"
)

type ReplanTrigger string

const (
	TriggerManual      ReplanTrigger = "MANUAL"
	TriggerGoalChanged ReplanTrigger = "GOAL_CHANGED"
	TriggerInstantiate ReplanTrigger = "INSTANTIATE"
)
