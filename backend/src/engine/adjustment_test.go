package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func TestApplyAdjustment_PriceScalesUnitPrice(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, models.VariablePrice, 10)
	assert.InDelta(t, 110.0, adjusted.Products[0].UnitPrice, 1e-9)
	assert.Equal(t, 100.0, m.Products[0].UnitPrice, "original model must not be mutated")
}

func TestApplyAdjustment_RevenueAliasesPrice(t *testing.T) {
	m := singleYearModel()
	byPrice := ApplyAdjustment(m, models.VariablePrice, -20)
	byRevenue := ApplyAdjustment(m, models.VariableRevenue, -20)
	assert.Equal(t, byPrice.Products[0].UnitPrice, byRevenue.Products[0].UnitPrice)
}

func TestApplyAdjustment_QuantityScalesSchedule(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, models.VariableQuantity, 50)
	assert.InDelta(t, 750.0, adjusted.Products[0].ProductionSchedule[0].Quantity, 1e-9)
}

func TestApplyAdjustment_SalesAliasesQuantity(t *testing.T) {
	m := singleYearModel()
	byQty := ApplyAdjustment(m, models.VariableQuantity, 15)
	bySales := ApplyAdjustment(m, models.VariableSales, 15)
	assert.Equal(t, byQty.Products[0].ProductionSchedule[0].Quantity, bySales.Products[0].ProductionSchedule[0].Quantity)
}

func TestApplyAdjustment_CostsScalesOperatingCosts(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, models.VariableCosts, -10)
	assert.InDelta(t, 9000.0, adjusted.OperatingCosts[0].Amount, 1e-9)
	assert.InDelta(t, 4500.0, adjusted.OperatingCosts[1].Amount, 1e-9)
}

func TestApplyAdjustment_OperatingCostsAliasesCosts(t *testing.T) {
	m := singleYearModel()
	byCosts := ApplyAdjustment(m, models.VariableCosts, 25)
	byOperating := ApplyAdjustment(m, models.VariableOperatingCosts, 25)
	assert.Equal(t, byCosts.OperatingCosts, byOperating.OperatingCosts)
}

func TestApplyAdjustment_InvestmentScalesAmount(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, models.VariableInvestment, 20)
	assert.InDelta(t, 12000.0, adjusted.Investments[0].Amount, 1e-9)
}

func TestApplyAdjustment_DiscountRateScalesRate(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, models.VariableDiscountRate, 10)
	assert.InDelta(t, 11.0, adjusted.Parameters.DiscountRate, 1e-9)
}

func TestApplyAdjustment_UnknownVariableIsNoOp(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, "not_a_real_variable", 50)
	assert.Equal(t, m, adjusted)
}

func TestApplyAdjustment_ZeroDeltaIsIdentity(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustment(m, models.VariablePrice, 0)
	assert.Equal(t, m, adjusted)
}

func TestApplyAdjustments_ComposesOnDisjointFields(t *testing.T) {
	m := singleYearModel()
	adjusted := ApplyAdjustments(m, []models.Adjustment{
		{Variable: models.VariablePrice, Delta: 10},
		{Variable: models.VariableInvestment, Delta: -10},
	})
	assert.InDelta(t, 110.0, adjusted.Products[0].UnitPrice, 1e-9)
	assert.InDelta(t, 9000.0, adjusted.Investments[0].Amount, 1e-9)
}

func TestApplyAdjustments_OrderIndependentOnDisjointFields(t *testing.T) {
	m := singleYearModel()
	forward := ApplyAdjustments(m, []models.Adjustment{
		{Variable: models.VariablePrice, Delta: 10},
		{Variable: models.VariableInvestment, Delta: -10},
	})
	backward := ApplyAdjustments(m, []models.Adjustment{
		{Variable: models.VariableInvestment, Delta: -10},
		{Variable: models.VariablePrice, Delta: 10},
	})
	assert.Equal(t, forward, backward)
}
