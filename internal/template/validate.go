package template

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/scheduler"
)

// ValidateSchema checks a TemplateSchema for structural errors and then runs
// dependency graph validation. Returns a slice of errors (empty if valid).
func ValidateSchema(schema *TemplateSchema) []error {
	var errs []error

	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if len(schema.Steps) == 0 {
		errs = append(errs, fmt.Errorf("at least one step is required"))
	}

	for i, s := range schema.Steps {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("steps[%d]: id is required", i))
		}
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("steps[%d]: title is required", i))
		}
		if _, err := domain.ParseBasis(s.Basis); err != nil {
			errs = append(errs, fmt.Errorf("steps[%d].basis: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	defs, err := ToDefinitions(schema, "")
	if err != nil {
		return append(errs, err)
	}
	if err := scheduler.Validate(defs); err != nil {
		errs = append(errs, unjoin(err)...)
	}
	return errs
}

// ToDefinitions maps the file steps onto domain definitions for templateID.
func ToDefinitions(schema *TemplateSchema, templateID string) ([]domain.StepDefinition, error) {
	defs := make([]domain.StepDefinition, 0, len(schema.Steps))
	for i, s := range schema.Steps {
		basis, err := domain.ParseBasis(s.Basis)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.ID, err)
		}
		seq := i + 1
		if s.Sequence != nil {
			seq = *s.Sequence
		}
		defs = append(defs, domain.StepDefinition{
			ID:         s.ID,
			TemplateID: templateID,
			Sequence:   seq,
			Title:      s.Title,
			Basis:      basis,
			OffsetDays: s.OffsetDays,
			DependsOn:  append([]string(nil), s.DependsOn...),
		})
	}
	return defs, nil
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// AsError folds a validation result into one error, nil when valid.
func AsError(errs []error) error {
	return errors.Join(errs...)
}
