package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate("onboarding")
	require.NoError(t, repo.Create(ctx, tmpl))

	fetched, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "onboarding", fetched.Name)
	assert.Equal(t, 1, fetched.Version)
	assert.Equal(t, domain.TemplateActive, fetched.Status)
	require.Len(t, fetched.Steps, 4)

	d := fetched.Steps[3]
	assert.Equal(t, "D", d.ID)
	assert.Equal(t, tmpl.ID, d.TemplateID)
	assert.Equal(t, domain.BasisGoal, d.Basis)
	assert.Equal(t, []string{"B", "C"}, d.DependsOn)

	a := fetched.Steps[0]
	assert.Equal(t, -10, a.OffsetDays)
	assert.Empty(t, a.DependsOn)
}

func TestTemplateRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateRepo_VersionsByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	next, err := repo.NextVersion(ctx, "renewal")
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	v1 := testutil.NewTestTemplate("renewal")
	require.NoError(t, repo.Create(ctx, v1))
	v2 := testutil.NewTestTemplate("renewal", testutil.WithVersion(2), testutil.WithTemplateStatus(domain.TemplateDraft))
	require.NoError(t, repo.Create(ctx, v2))

	next, err = repo.NextVersion(ctx, "renewal")
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	latest, err := repo.GetLatest(ctx, "renewal")
	require.NoError(t, err)
	assert.Equal(t, v2.ID, latest.ID)
	assert.Len(t, latest.Steps, 4)

	// Same name and version is rejected by the schema.
	dup := testutil.NewTestTemplate("renewal", testutil.WithVersion(2))
	assert.Error(t, repo.Create(ctx, dup))
}

func TestTemplateRepo_ListAndSetStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	a := testutil.NewTestTemplate("alpha", testutil.WithTemplateStatus(domain.TemplateDraft))
	b := testutil.NewTestTemplate("beta")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Nil(t, list[0].Steps)

	require.NoError(t, repo.SetStatus(ctx, a.ID, domain.TemplateActive))
	fetched, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateActive, fetched.Status)

	assert.ErrorIs(t, repo.SetStatus(ctx, "missing", domain.TemplateActive), domain.ErrNotFound)
}
