// backend/src/engine/projection.go
package engine

import "github.com/meridian-capital/appraisal/backend/src/models"

// Project is the single entry point of the engine (spec §4.8, C8). It
// validates the model, then computes every derived series exactly
// once, feeding later components from earlier ones so statements
// share the same per-year depreciation and debt-service figures.
//
// A structurally invalid model aborts the run and returns
// (nil, *ValidationError); no partial bundle is ever produced (spec
// §7, INVALID_MODEL).
func Project(m models.ProjectModel) (*models.ProjectionBundle, *ValidationError) {
	if verr := ValidateModel(m); verr != nil {
		return nil, verr
	}

	cashFlows, incomeStatements, balanceSheets := composeStatements(m)

	amortizations := make([]models.LoanAmortization, 0, len(m.Financings))
	for _, f := range m.Financings {
		if !f.IsLoan() {
			continue
		}
		amortizations = append(amortizations, models.LoanAmortization{
			FinancingID: f.ID,
			Rows:        AmortizationSchedule(f),
		})
	}

	series := make([]float64, len(cashFlows))
	for i, cf := range cashFlows {
		series[i] = cf.NetCashFlow
	}

	indicators := computeIndicators(m, series, incomeStatements)

	bundle := &models.ProjectionBundle{
		CashFlows:        cashFlows,
		IncomeStatements: incomeStatements,
		BalanceSheets:    balanceSheets,
		Amortizations:    amortizations,
		Indicators:       indicators,
		Diagnostics:      CollectWarnings(m),
	}
	return bundle, nil
}

// computeIndicators assembles the full FinancialIndicators suite from
// the net cash flow series and the model's own totals (spec §4.5).
func computeIndicators(m models.ProjectModel, series []float64, incomeStatements []models.IncomeStatementYear) models.FinancialIndicators {
	var ind models.FinancialIndicators

	ind.NPV = NPV(series, m.Parameters.DiscountRate)
	rate, converged := IRR(series)
	ind.IRR = rate
	ind.IRRConverged = converged
	ind.MIRR = MIRR(series, m.Parameters.DiscountRate)
	ind.SimplePayback = SimplePayback(series)
	ind.DiscountedPayback = DiscountedPayback(series, m.Parameters.DiscountRate)

	totalInvestment := 0.0
	for _, inv := range m.Investments {
		totalInvestment += inv.Amount
	}
	totalNetIncome := 0.0
	for _, is := range incomeStatements {
		totalNetIncome += is.NetIncome
	}
	ind.ROI = ROI(totalNetIncome, totalInvestment)
	ind.BCR = BCR(series, m.Parameters.DiscountRate)

	fixedCosts, unitPrice, variableCostPerUnit := breakEvenInputs(m)
	ind.BreakEven = BreakEven(fixedCosts, unitPrice, variableCostPerUnit)

	return ind
}

// breakEvenInputs resolves the three scalars BreakEven needs. Per
// SPEC_FULL.md's resolution of the "break-even averages" open
// question, callers are expected to set BreakEvenUnitPrice /
// BreakEvenVariableCostPerUnit / BreakEvenFixedCosts explicitly; when
// left at zero the façade falls back to the first product's unit
// price and the sum of variable operating costs' UnitCost, made
// explicit here rather than silently mixing a mean and a total.
func breakEvenInputs(m models.ProjectModel) (fixedCosts, unitPrice, variableCostPerUnit float64) {
	fixedCosts = m.BreakEvenFixedCosts
	if fixedCosts == 0 {
		for _, c := range m.OperatingCosts {
			if c.CostType == models.CostTypeFixed {
				fixedCosts += c.Amount
			}
		}
	}

	unitPrice = m.BreakEvenUnitPrice
	if unitPrice == 0 && len(m.Products) > 0 {
		unitPrice = m.Products[0].UnitPrice
	}

	variableCostPerUnit = m.BreakEvenVariableCostPerUnit
	if variableCostPerUnit == 0 {
		for _, c := range m.OperatingCosts {
			if c.CostType == models.CostTypeVariable {
				variableCostPerUnit += c.UnitCost
			}
		}
	}
	return fixedCosts, unitPrice, variableCostPerUnit
}
