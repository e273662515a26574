package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func TestValidateStringNotEmpty_RejectsBlank(t *testing.T) {
	err := ValidateStringNotEmpty("   ", "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestValidateStringMaxLength_RejectsOverLong(t *testing.T) {
	err := ValidateStringMaxLength("abcdef", 3, "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum length")
}

func TestValidateStringRegex_RejectsNonMatch(t *testing.T) {
	err := ValidateStringRegex("abc123!", freeTextPattern, "name", "letters and numbers only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the expected format")
}

func TestValidateRequiredLabel_AcceptsOrdinaryName(t *testing.T) {
	assert.NoError(t, ValidateRequiredLabel("Solar Plant 2 (Phase A/B)", "name", DefaultMaxStringLength))
}

func TestValidateRequiredLabel_RejectsEmpty(t *testing.T) {
	err := ValidateRequiredLabel("", "name", DefaultMaxStringLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestValidateRequiredLabel_RejectsDisallowedCharacters(t *testing.T) {
	err := ValidateRequiredLabel("<script>alert(1)</script>", "name", DefaultMaxStringLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the expected format")
}

func TestValidateOptionalText_AllowsEmpty(t *testing.T) {
	assert.NoError(t, ValidateOptionalText("", "description", MaxDescriptionLength))
}

func TestValidateOptionalText_ValidatesWhenPresent(t *testing.T) {
	err := ValidateOptionalText("bad*chars", "description", MaxDescriptionLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the expected format")
}

func sampleProject() models.ProjectModel {
	return models.ProjectModel{
		Name: "Hydro Plant Expansion",
		Products: []models.Product{
			{Name: "Electricity"},
		},
		Financings: []models.Financing{
			{Name: "Senior Loan"},
		},
		OperatingCosts: []models.OperatingCost{
			{Description: "Routine maintenance"},
		},
	}
}

func TestValidateProjectFields_AcceptsWellFormedProject(t *testing.T) {
	assert.NoError(t, ValidateProjectFields(sampleProject()))
}

func TestValidateProjectFields_RejectsEmptyProjectName(t *testing.T) {
	m := sampleProject()
	m.Name = ""
	err := ValidateProjectFields(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateProjectFields_RejectsEmptyProductName(t *testing.T) {
	m := sampleProject()
	m.Products[0].Name = ""
	err := ValidateProjectFields(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products[0].name")
}

func TestValidateProjectFields_RejectsOverlongDescription(t *testing.T) {
	m := sampleProject()
	long := make([]byte, MaxDescriptionLength+1)
	for i := range long {
		long[i] = 'a'
	}
	m.OperatingCosts[0].Description = string(long)
	err := ValidateProjectFields(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operatingCosts[0].description")
}
