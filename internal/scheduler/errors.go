package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/casetrack/internal/domain"
)

// CycleError reports a dependency cycle. Path lists the steps in dependency
// order: each step depends on the next, and the last depends on the first.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "dependency cycle detected"
	}
	return fmt.Sprintf("dependency cycle: %s -> %s", strings.Join(e.Path, " -> "), e.Path[0])
}

// DanglingReferenceError is a depends_on entry naming no step in the template.
type DanglingReferenceError struct {
	StepID     string
	MissingRef string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("step %q depends on unknown step %q", e.StepID, e.MissingRef)
}

// DuplicateStepError is two step definitions sharing an id.
type DuplicateStepError struct {
	StepID string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("duplicate step id %q", e.StepID)
}

// OffsetRangeError is a step offset beyond domain.MaxOffsetDays in either
// direction.
type OffsetRangeError struct {
	StepID     string
	OffsetDays int
}

func (e *OffsetRangeError) Error() string {
	return fmt.Sprintf("step %q: offset_days %d is outside ±%d", e.StepID, e.OffsetDays, domain.MaxOffsetDays)
}

// ScheduleConflictError means a locked step would fall after a step that
// depends on it. Locks are never moved to resolve this.
type ScheduleConflictError struct {
	LockedStepID    string
	DependentStepID string
	LockedDate      time.Time
	DependentDate   time.Time
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("cannot replan with these locks: locked step %q (%s) falls after dependent step %q (%s)",
		e.LockedStepID, e.LockedDate.Format(dateLayout),
		e.DependentStepID, e.DependentDate.Format(dateLayout))
}

// UnscheduledLockError is a lock on an instance that has no date to preserve.
type UnscheduledLockError struct {
	StepID     string
	InstanceID string
}

func (e *UnscheduledLockError) Error() string {
	return fmt.Sprintf("step %q is locked (instance %q) but has no due date", e.StepID, e.InstanceID)
}

// InvariantViolationError flags a locked step whose date would change. It
// indicates a calculator defect, not bad input.
type InvariantViolationError struct {
	StepID       string
	DefinitionID string
	OldDueDate   *time.Time
	NewDueDate   time.Time
}

func (e *InvariantViolationError) Error() string {
	old := "none"
	if e.OldDueDate != nil {
		old = e.OldDueDate.Format(dateLayout)
	}
	return fmt.Sprintf("invariant violated: locked step %q (definition %q) moved from %s to %s",
		e.StepID, e.DefinitionID, old, e.NewDueDate.Format(dateLayout))
}
