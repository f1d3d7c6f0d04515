package template

import (
	"testing"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() *TemplateSchema {
	return &TemplateSchema{
		Name: "Test",
		Steps: []StepConfig{
			{ID: "A", Title: "A", Basis: "goal", OffsetDays: -10},
			{ID: "B", Title: "B", Basis: "prev", OffsetDays: 3, DependsOn: []string{"A"}},
		},
	}
}

func TestValidateSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateSchema(validSchema()))
}

func TestValidateSchema_StructuralErrors(t *testing.T) {
	errs := ValidateSchema(&TemplateSchema{Steps: []StepConfig{{Basis: "someday"}}})
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), "name is required")
	assert.Contains(t, errs[1].Error(), "id is required")
	assert.Contains(t, errs[2].Error(), "title is required")
	assert.ErrorIs(t, errs[3], domain.ErrUnknownBasis)
}

func TestValidateSchema_NoSteps(t *testing.T) {
	errs := ValidateSchema(&TemplateSchema{Name: "Empty"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one step")
}

func TestValidateSchema_GraphErrors(t *testing.T) {
	s := validSchema()
	s.Steps[0].DependsOn = []string{"B"}
	errs := ValidateSchema(s)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "dependency cycle")

	s = validSchema()
	s.Steps[1].DependsOn = []string{"X", "Y"}
	errs = ValidateSchema(s)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `unknown step "X"`)
	assert.Contains(t, errs[1].Error(), `unknown step "Y"`)
}

func TestToDefinitions_DefaultsSequenceToPosition(t *testing.T) {
	seven := 7
	s := validSchema()
	s.Steps[1].Sequence = &seven

	defs, err := ToDefinitions(s, "tpl-1")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, 1, defs[0].Sequence)
	assert.Equal(t, 7, defs[1].Sequence)
	assert.Equal(t, domain.BasisGoal, defs[0].Basis)
	assert.Equal(t, domain.BasisPrevious, defs[1].Basis)
	assert.Equal(t, "tpl-1", defs[1].TemplateID)
	assert.Equal(t, []string{"A"}, defs[1].DependsOn)
}

func TestAsError(t *testing.T) {
	assert.NoError(t, AsError(nil))
	assert.Error(t, AsError(ValidateSchema(&TemplateSchema{})))
}

func TestValidateSchema_RejectsNonCanonicalBasis(t *testing.T) {
	for _, basis := range []string{"previous", "GOAL", " Prev "} {
		s := &TemplateSchema{
			Name:  "Test",
			Steps: []StepConfig{{ID: "A", Title: "A", Basis: basis}},
		}
		errs := ValidateSchema(s)
		require.Len(t, errs, 1, "basis %q", basis)
		assert.ErrorIs(t, errs[0], domain.ErrUnknownBasis, "basis %q", basis)
	}
}

func TestValidateSchema_RejectsOffsetBeyondLimit(t *testing.T) {
	s := validSchema()
	s.Steps[0].OffsetDays = domain.MaxOffsetDays
	s.Steps[1].OffsetDays = -domain.MaxOffsetDays
	assert.Empty(t, ValidateSchema(s))

	s.Steps[1].OffsetDays = 50_000_000
	errs := ValidateSchema(s)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `step "B": offset_days 50000000`)

	s.Steps[0].OffsetDays = -domain.MaxOffsetDays - 1
	assert.Len(t, ValidateSchema(s), 2)
}
