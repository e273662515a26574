package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func singleYearModel() models.ProjectModel {
	return models.ProjectModel{
		Parameters: models.ProjectParameters{
			ConstructionYears: 1, OperationYears: 1,
			DiscountRate: 10, TaxRate: 20,
		},
		Investments: []models.Investment{
			{ID: "inv-1", Category: models.CategoryMachinery, Amount: 10000,
				Year: 0, UsefulLife: 5, SalvageValue: 0,
				DepreciationMethod: models.DepreciationStraightLine},
		},
		Products: []models.Product{
			{ID: "p1", Name: "Widget", UnitPrice: 100,
				ProductionSchedule: []models.ProductionScheduleRow{{Year: 1, Quantity: 500}}},
		},
		OperatingCosts: []models.OperatingCost{
			{ID: "c1", CostType: models.CostTypeVariable, Amount: 10000, StartYear: 1},
			{ID: "c2", CostType: models.CostTypeFixed, Amount: 5000, StartYear: 1},
		},
		Financings: []models.Financing{
			{ID: "loan-1", Type: models.FinancingLoan, Amount: 100000,
				InterestRate: 10, TermYears: 5, DisbursementYear: 0, RepaymentStartYear: 1},
		},
	}
}

func TestComposeStatements_BalanceSheetIdentityHolds(t *testing.T) {
	m := singleYearModel()
	_, _, balanceSheets := composeStatements(m)

	for _, bs := range balanceSheets {
		total := bs.Cash + bs.Receivables + bs.Inventory + bs.NetFixedAssets
		assert.InDelta(t, bs.TotalLiabilities+bs.TotalEquity, total, 1e-6*math.Max(1, total))
		assert.InDelta(t, bs.TotalAssets, total, 1e-9)
	}
}

func TestComposeStatements_ConstructionYearIncomeIsZeroed(t *testing.T) {
	m := singleYearModel()
	_, incomeStatements, _ := composeStatements(m)
	require.NotEmpty(t, incomeStatements)
	assert.Equal(t, models.IncomeStatementYear{Year: 0}, incomeStatements[0])
}

func TestComposeStatements_RevenueOnlyAfterConstruction(t *testing.T) {
	m := singleYearModel()
	cashFlows, _, _ := composeStatements(m)
	require.Len(t, cashFlows, 3)
	assert.Equal(t, 0.0, cashFlows[0].OperatingInflow)
	assert.Equal(t, 0.0, cashFlows[1].OperatingInflow)
	assert.InDelta(t, 50000.0, cashFlows[2].OperatingInflow, 1e-9)
}

func TestComposeStatements_ZeroProductsAndCosts(t *testing.T) {
	m := singleYearModel()
	m.Products = nil
	m.OperatingCosts = nil
	cashFlows, incomeStatements, _ := composeStatements(m)

	for _, cf := range cashFlows {
		assert.Equal(t, 0.0, cf.OperatingInflow)
	}
	for _, is := range incomeStatements {
		assert.Equal(t, 0.0, is.Revenue)
	}
}

func TestYearRevenue_EscalationAnchoredAtFirstYear(t *testing.T) {
	products := []models.Product{
		{UnitPrice: 100, PriceEscalation: 10,
			ProductionSchedule: []models.ProductionScheduleRow{
				{Year: 1, Quantity: 10},
				{Year: 2, Quantity: 10},
			}},
	}
	// Year 1 is unescalated: (1+0.10)^0 == 1.
	assert.InDelta(t, 1000.0, yearRevenue(products, 0, 1), 1e-9)
	assert.InDelta(t, 1100.0, yearRevenue(products, 0, 2), 1e-9)
}

func TestYearRevenue_MissingScheduleYearIsZero(t *testing.T) {
	products := []models.Product{
		{UnitPrice: 100, ProductionSchedule: []models.ProductionScheduleRow{{Year: 1, Quantity: 10}}},
	}
	assert.Equal(t, 0.0, yearRevenue(products, 0, 2))
}
