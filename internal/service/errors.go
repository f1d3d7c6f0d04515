package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/scheduler"
)

type ScheduleErrorCode string

const (
	ErrCodeTemplateInvalid    ScheduleErrorCode = "TEMPLATE_INVALID"
	ErrCodeTemplateInactive   ScheduleErrorCode = "TEMPLATE_INACTIVE"
	ErrCodeCalendarNotFound   ScheduleErrorCode = "CALENDAR_NOT_FOUND"
	ErrCodeScheduleConflict   ScheduleErrorCode = "SCHEDULE_CONFLICT"
	ErrCodeInvariantViolation ScheduleErrorCode = "INVARIANT_VIOLATION"
	ErrCodeStaleCase          ScheduleErrorCode = "STALE_CASE"
	ErrCodeNotFound           ScheduleErrorCode = "NOT_FOUND"
)

// ScheduleError is the error every use case surfaces for a known failure.
// Err keeps the typed cause for errors.As.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// classify maps a core or repository error to a ScheduleError. Unknown
// errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *ScheduleError
	if errors.As(err, &se) {
		return err
	}

	var (
		calNotFound *calendar.CalendarNotFoundError
		conflict    *scheduler.ScheduleConflictError
		unscheduled *scheduler.UnscheduledLockError
		invariant   *scheduler.InvariantViolationError
		cycle       *scheduler.CycleError
		dangling    *scheduler.DanglingReferenceError
		duplicate   *scheduler.DuplicateStepError
		offset      *scheduler.OffsetRangeError
	)
	var code ScheduleErrorCode
	switch {
	case errors.As(err, &calNotFound):
		code = ErrCodeCalendarNotFound
	case errors.As(err, &conflict), errors.As(err, &unscheduled):
		code = ErrCodeScheduleConflict
	case errors.As(err, &invariant):
		code = ErrCodeInvariantViolation
	case errors.As(err, &cycle), errors.As(err, &dangling), errors.As(err, &duplicate),
		errors.As(err, &offset), errors.Is(err, domain.ErrUnknownBasis):
		code = ErrCodeTemplateInvalid
	case errors.Is(err, domain.ErrStaleCase):
		code = ErrCodeStaleCase
	case errors.Is(err, domain.ErrNotFound):
		code = ErrCodeNotFound
	default:
		return err
	}
	return &ScheduleError{Code: code, Message: err.Error(), Err: err}
}

// IsCode reports whether err carries a ScheduleError with the given code.
func IsCode(err error, code ScheduleErrorCode) bool {
	var se *ScheduleError
	return errors.As(err, &se) && se.Code == code
}

func formatValidationErrors(errs []error) string {
	msg := fmt.Sprintf("template validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return msg
}
