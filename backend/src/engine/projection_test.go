package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func TestProject_IsDeterministic(t *testing.T) {
	m := singleYearModel()
	bundle1, verr1 := Project(m)
	require.Nil(t, verr1)
	bundle2, verr2 := Project(m)
	require.Nil(t, verr2)

	assert.Equal(t, bundle1.Indicators, bundle2.Indicators)
	assert.Equal(t, bundle1.CashFlows, bundle2.CashFlows)
}

func TestProject_RejectsInvalidModel(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].SalvageValue = m.Investments[0].Amount + 1

	bundle, verr := Project(m)
	assert.Nil(t, bundle)
	require.NotNil(t, verr)
	assert.True(t, verr.HasProblems())
}

func TestProject_LoanWithSingleRepaymentYearProducesWarning(t *testing.T) {
	m := singleYearModel()
	m.Financings[0] = models.Financing{
		ID: "loan-grace", Type: models.FinancingLoan, Amount: 1000,
		InterestRate: 5, TermYears: 3, GracePeriod: 2,
		DisbursementYear: 0, RepaymentStartYear: 1,
	}

	bundle, verr := Project(m)
	require.Nil(t, verr)
	found := false
	for _, d := range bundle.Diagnostics {
		if d.Code == "LOAN_FULLY_IN_GRACE" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestProject_ZeroDeltaAdjustmentMatchesBaseline(t *testing.T) {
	m := singleYearModel()
	base, verr := Project(m)
	require.Nil(t, verr)

	adjusted := ApplyAdjustments(m, []models.Adjustment{{Variable: models.VariablePrice, Delta: 0}})
	after, verr2 := Project(adjusted)
	require.Nil(t, verr2)

	assert.InDelta(t, base.Indicators.NPV, after.Indicators.NPV, 1e-9*max1(base.Indicators.NPV))
	assert.InDelta(t, base.Indicators.IRR, after.Indicators.IRR, 1e-6)
}

func max1(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

func TestProject_ContributionMarginNonPositiveStillProducesIndicators(t *testing.T) {
	m := singleYearModel()
	m.BreakEvenUnitPrice = 50
	m.BreakEvenVariableCostPerUnit = 50
	m.BreakEvenFixedCosts = 1000

	bundle, verr := Project(m)
	require.Nil(t, verr)
	assert.Equal(t, -1.0, bundle.Indicators.BreakEven.Units)
	assert.Equal(t, -1.0, bundle.Indicators.BreakEven.Revenue)
	// Other indicators remain valid.
	assert.NotZero(t, bundle.Indicators.NPV)
}

func TestProject_AmortizationInvariantSumsToPrincipal(t *testing.T) {
	m := singleYearModel()
	bundle, verr := Project(m)
	require.Nil(t, verr)
	require.Len(t, bundle.Amortizations, 1)

	var total float64
	for _, row := range bundle.Amortizations[0].Rows {
		total += row.PrincipalPaid
	}
	assert.InDelta(t, m.Financings[0].Amount, total, 1e-6)
	assert.Equal(t, 0.0, bundle.Amortizations[0].Rows[len(bundle.Amortizations[0].Rows)-1].EndingBalance)
}
