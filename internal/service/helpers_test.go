package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/repository"
	"github.com/alexanderramin/casetrack/internal/template"
	"github.com/alexanderramin/casetrack/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db        *sql.DB
	uow       db.UnitOfWork
	templates TemplateService
	cases     CaseService
	schedule  ScheduleService
	calendars CalendarService

	templateRepo *repository.SQLiteTemplateRepo
	caseRepo     *repository.SQLiteCaseRepo
	stepRepo     *repository.SQLiteStepInstanceRepo
	calendarRepo *repository.SQLiteCalendarRepo
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	testutil.SeedCalendar(t, database, "none")
	return newTestServicesWithUoW(t, database, testutil.NewTestUoW(database))
}

func newTestServicesWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *testServices {
	t.Helper()
	s := &testServices{
		db:           database,
		uow:          uow,
		templateRepo: repository.NewSQLiteTemplateRepo(database),
		caseRepo:     repository.NewSQLiteCaseRepo(database),
		stepRepo:     repository.NewSQLiteStepInstanceRepo(database),
		calendarRepo: repository.NewSQLiteCalendarRepo(database),
	}
	s.templates = NewTemplateService(s.templateRepo, uow)
	s.cases = NewCaseService(s.templates, s.caseRepo, s.calendarRepo, uow, "none")
	s.schedule = NewScheduleService(s.templateRepo, s.caseRepo, s.stepRepo, s.calendarRepo, uow)
	s.calendars = NewCalendarService(s.calendarRepo, uow)
	return s
}

func exampleSchema(name string) *template.TemplateSchema {
	return &template.TemplateSchema{
		Name: name,
		Steps: []template.StepConfig{
			{ID: "A", Title: "Collect documents", Basis: "goal", OffsetDays: -10},
			{ID: "B", Title: "Review", Basis: "prev", OffsetDays: 3, DependsOn: []string{"A"}},
			{ID: "C", Title: "Notify", Basis: "prev", OffsetDays: 2, DependsOn: []string{"A"}},
			{ID: "D", Title: "Close", Basis: "goal", OffsetDays: 0, DependsOn: []string{"B", "C"}},
		},
	}
}

// seedActiveTemplate imports and activates the four-step example template.
func seedActiveTemplate(t *testing.T, s *testServices) *domain.Template {
	t.Helper()
	ctx := context.Background()
	tmpl, err := s.templates.ImportSchema(ctx, exampleSchema("example"))
	require.NoError(t, err)
	tmpl, err = s.templates.Activate(ctx, tmpl.ID)
	require.NoError(t, err)
	return tmpl
}

// seedExampleCase creates a case due 2025-12-31 on the weekend-only calendar.
func seedExampleCase(t *testing.T, s *testServices) *CaseResult {
	t.Helper()
	tmpl := seedActiveTemplate(t, s)
	res, err := s.cases.Create(context.Background(), CreateCaseRequest{
		TemplateRef: tmpl.ID,
		Title:       "Jane Doe",
		GoalDate:    testutil.Date(2025, time.December, 31),
	})
	require.NoError(t, err)
	return res
}

func dueDates(t *testing.T, s *testServices, caseID string) map[string]string {
	t.Helper()
	instances, err := s.stepRepo.ListByCase(context.Background(), caseID)
	require.NoError(t, err)
	out := make(map[string]string, len(instances))
	for _, inst := range instances {
		if inst.DueDate == nil {
			out[inst.DefinitionID] = ""
			continue
		}
		out[inst.DefinitionID] = inst.DueDate.Format("2006-01-02")
	}
	return out
}

func diffByDefinition(diffs []domain.StepDiff) map[string]domain.StepDiff {
	out := make(map[string]domain.StepDiff, len(diffs))
	for _, d := range diffs {
		out[d.DefinitionID] = d
	}
	return out
}
