package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/repository"
	"github.com/alexanderramin/casetrack/internal/scheduler"
	"github.com/alexanderramin/casetrack/internal/template"
	"github.com/google/uuid"
)

type templateService struct {
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates: templates,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Import(ctx context.Context, path string) (*domain.Template, error) {
	schema, err := template.LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading template file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *templateService) ImportSchema(ctx context.Context, schema *template.TemplateSchema) (t *domain.Template, err error) {
	fields := map[string]any{"template": schema.Name}
	defer observe(ctx, s.observer, "import-template", fields, &err)()

	if errs := template.ValidateSchema(schema); len(errs) > 0 {
		return nil, &ScheduleError{
			Code:    ErrCodeTemplateInvalid,
			Message: formatValidationErrors(errs),
			Err:     template.AsError(errs),
		}
	}

	id := uuid.New().String()
	steps, err := template.ToDefinitions(schema, id)
	if err != nil {
		return nil, classify(err)
	}

	t = &domain.Template{
		ID:          id,
		Name:        strings.TrimSpace(schema.Name),
		Status:      domain.TemplateDraft,
		Description: schema.Description,
		Steps:       steps,
		CreatedAt:   time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		version, err := txTemplates.NextVersion(ctx, t.Name)
		if err != nil {
			return err
		}
		t.Version = version
		if err := txTemplates.Create(ctx, t); err != nil {
			return fmt.Errorf("creating template: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["version"] = t.Version
	fields["step_count"] = len(t.Steps)
	return t, nil
}

func (s *templateService) ValidateFile(path string) []error {
	schema, err := template.LoadSchema(path)
	if err != nil {
		return []error{err}
	}
	return template.ValidateSchema(schema)
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.templates.List(ctx)
}

func (s *templateService) Get(ctx context.Context, ref string) (*domain.Template, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &ScheduleError{Code: ErrCodeNotFound, Message: "empty template reference", Err: domain.ErrNotFound}
	}
	t, err := s.templates.GetByID(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		t, err = s.templates.GetLatest(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &ScheduleError{Code: ErrCodeNotFound, Message: fmt.Sprintf("template %q not found", ref), Err: err}
		}
		return nil, err
	}
	return t, nil
}

// Activate re-validates a template and makes it the active version of its
// name. Other active versions of the same name are retired.
func (s *templateService) Activate(ctx context.Context, ref string) (t *domain.Template, err error) {
	fields := map[string]any{"template": ref}
	defer observe(ctx, s.observer, "activate-template", fields, &err)()

	t, err = s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	fields["version"] = t.Version
	if t.Status == domain.TemplateActive {
		return t, nil
	}
	if err := scheduler.Validate(t.Steps); err != nil {
		return nil, classify(err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		all, err := txTemplates.List(ctx)
		if err != nil {
			return err
		}
		for _, other := range all {
			if other.Name == t.Name && other.ID != t.ID && other.Status == domain.TemplateActive {
				if err := txTemplates.SetStatus(ctx, other.ID, domain.TemplateRetired); err != nil {
					return err
				}
			}
		}
		return txTemplates.SetStatus(ctx, t.ID, domain.TemplateActive)
	})
	if err != nil {
		return nil, err
	}
	t.Status = domain.TemplateActive
	return t, nil
}
