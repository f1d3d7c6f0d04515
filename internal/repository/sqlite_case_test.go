package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTemplate(t *testing.T, repo *SQLiteTemplateRepo) *domain.Template {
	t.Helper()
	tmpl := testutil.NewTestTemplate("onboarding")
	require.NoError(t, repo.Create(context.Background(), tmpl))
	return tmpl
}

func TestCaseRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCalendar(t, db, "none")
	tmpl := seedTemplate(t, NewSQLiteTemplateRepo(db))
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCase(tmpl.ID, "Jane Doe", testutil.WithGoalDate(testutil.Date(2026, time.January, 30)))
	require.NoError(t, repo.Create(ctx, c))

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", fetched.Title)
	assert.Equal(t, tmpl.ID, fetched.TemplateID)
	assert.Equal(t, "none", fetched.CalendarID)
	assert.Equal(t, 1, fetched.Version)
	assert.True(t, fetched.GoalDate.Equal(testutil.Date(2026, time.January, 30)))
}

func TestCaseRepo_CreateRejectsUnknownCalendar(t *testing.T) {
	db := testutil.NewTestDB(t)
	tmpl := seedTemplate(t, NewSQLiteTemplateRepo(db))
	repo := NewSQLiteCaseRepo(db)

	c := testutil.NewTestCase(tmpl.ID, "x", testutil.WithCalendar("missing"))
	assert.Error(t, repo.Create(context.Background(), c))
}

func TestCaseRepo_UpdateSchedule_OptimisticVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCalendar(t, db, "none")
	tmpl := seedTemplate(t, NewSQLiteTemplateRepo(db))
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCase(tmpl.ID, "Jane Doe")
	require.NoError(t, repo.Create(ctx, c))

	c.GoalDate = testutil.Date(2026, time.February, 13)
	require.NoError(t, repo.UpdateSchedule(ctx, c, 1))
	assert.Equal(t, 2, c.Version)

	// A writer still holding version 1 loses.
	stale := *c
	stale.GoalDate = testutil.Date(2026, time.March, 2)
	err := repo.UpdateSchedule(ctx, &stale, 1)
	assert.ErrorIs(t, err, domain.ErrStaleCase)

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Version)
	assert.True(t, fetched.GoalDate.Equal(testutil.Date(2026, time.February, 13)))

	missing := testutil.NewTestCase(tmpl.ID, "ghost")
	assert.ErrorIs(t, repo.UpdateSchedule(ctx, missing, 1), domain.ErrNotFound)
}

func TestCaseRepo_DeleteCascadesInstances(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCalendar(t, db, "none")
	tmpl := seedTemplate(t, NewSQLiteTemplateRepo(db))
	cases := NewSQLiteCaseRepo(db)
	steps := NewSQLiteStepInstanceRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCase(tmpl.ID, "Jane Doe")
	require.NoError(t, cases.Create(ctx, c))
	require.NoError(t, steps.Create(ctx, testutil.NewTestInstance(c.ID, "A")))

	require.NoError(t, cases.Delete(ctx, c.ID))
	list, err := steps.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, cases.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestCaseRepo_ListOrderedByGoal(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCalendar(t, db, "none")
	tmpl := seedTemplate(t, NewSQLiteTemplateRepo(db))
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	late := testutil.NewTestCase(tmpl.ID, "late", testutil.WithGoalDate(testutil.Date(2026, time.June, 1)))
	early := testutil.NewTestCase(tmpl.ID, "early", testutil.WithGoalDate(testutil.Date(2026, time.February, 1)))
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].Title)
	assert.Equal(t, "late", list[1].Title)
}
