package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func TestValidateModel_AcceptsWellFormedModel(t *testing.T) {
	assert.Nil(t, ValidateModel(singleYearModel()))
}

func TestValidateModel_RejectsUnknownInvestmentCategory(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].Category = "spaceship"
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "category is unknown")
}

func TestValidateModel_RejectsSalvageAboveAmount(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].SalvageValue = m.Investments[0].Amount + 1
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "salvageValue")
}

func TestValidateModel_RejectsGracePeriodNotLessThanTerm(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].GracePeriod = m.Financings[0].TermYears
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "gracePeriod")
}

func TestValidateModel_RejectsDuplicateScheduleYear(t *testing.T) {
	m := singleYearModel()
	m.Products[0].ProductionSchedule = append(m.Products[0].ProductionSchedule,
		models.ProductionScheduleRow{Year: 1, Quantity: 10})
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "duplicates")
}

func TestValidateModel_RejectsScheduleYearOutOfRange(t *testing.T) {
	m := singleYearModel()
	m.Products[0].ProductionSchedule[0].Year = m.Parameters.OperationYears + 5
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "out of range")
}

func TestValidateModel_RejectsNegativeAmounts(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].Amount = -1
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "cannot be negative")
}

func TestValidateModel_RejectsOperationYearsOutOfRange(t *testing.T) {
	m := singleYearModel()
	m.Parameters.OperationYears = 0
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "operationYears")
}

func TestValidateModel_RejectsUnknownFinancingType(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].Type = "bond"
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "type is unknown")
}

func TestValidateModel_RejectsNegativeGracePeriod(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].GracePeriod = -1
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "gracePeriod cannot be negative")
}

func TestValidateModel_RejectsNegativeTermYears(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].TermYears = -1
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "termYears cannot be negative")
}

func TestValidateModel_RejectsLoanWithoutRepaymentStart(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].RepaymentStartYear = 0
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "repaymentStartYear")
}

func TestValidateModel_AggregatesAllProblems(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].Category = "spaceship"
	m.Financings[0].GracePeriod = m.Financings[0].TermYears
	verr := ValidateModel(m)
	require.NotNil(t, verr)
	assert.Len(t, verr.Problems(), 2)
}

func TestCollectWarnings_FlagsLoanWithSingleRepaymentYear(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].GracePeriod = m.Financings[0].TermYears - 1
	diags := CollectWarnings(m)
	require.Len(t, diags, 1)
	assert.Equal(t, "LOAN_FULLY_IN_GRACE", diags[0].Code)
}

func TestCollectWarnings_FlagsZeroDecliningRate(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].DepreciationMethod = models.DepreciationDecliningBalance
	m.Investments[0].DepreciationRate = 0
	diags := CollectWarnings(m)
	found := false
	for _, d := range diags {
		if d.Code == "ZERO_DECLINING_RATE" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCollectWarnings_NoWarningsOnCleanModel(t *testing.T) {
	m := singleYearModel()
	m.Financings[0].GracePeriod = 0
	assert.Empty(t, CollectWarnings(m))
}
