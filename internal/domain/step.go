package domain

import "time"

// StepDefinition is one step of a template. It is immutable once the owning
// template is activated.
type StepDefinition struct {
	ID         string
	TemplateID string
	Sequence   int
	Title      string
	Basis      Basis
	OffsetDays int
	DependsOn  []string
}

// StepInstance is the per-case materialization of a StepDefinition.
type StepInstance struct {
	ID           string
	CaseID       string
	DefinitionID string
	DueDate      *time.Time
	Locked       bool
	UpdatedAt    time.Time
}

// StepDiff describes how one step's due date moves under a new plan.
type StepDiff struct {
	StepID       string
	DefinitionID string
	OldDueDate   *time.Time
	NewDueDate   time.Time
	// IsLocked means NewDueDate equals OldDueDate by policy.
	IsLocked bool
}

// Changed reports whether applying the diff would alter the stored date.
func (d StepDiff) Changed() bool {
	if d.OldDueDate == nil {
		return true
	}
	return !d.OldDueDate.Equal(d.NewDueDate)
}
