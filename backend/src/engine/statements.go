// backend/src/engine/statements.go
package engine

import (
	"math"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

// composeStatements builds the three parallel annual series (cash
// flow, income statement, balance sheet) for years [0, totalYears]
// (spec §4.4, C4). It shares the same per-year depreciation and debt
// service figures across all three, so they stay cross-referentially
// consistent by construction.
func composeStatements(m models.ProjectModel) ([]models.CashFlowYear, []models.IncomeStatementYear, []models.BalanceSheetYear) {
	totalYears := m.TotalYears()
	discountRate := m.Parameters.DiscountRate / 100
	taxRate := m.Parameters.TaxRate / 100

	cashFlows := make([]models.CashFlowYear, 0, totalYears+1)
	incomeStatements := make([]models.IncomeStatementYear, 0, totalYears+1)
	balanceSheets := make([]models.BalanceSheetYear, 0, totalYears+1)

	cumulativeCash := 0.0
	cumulativeRetainedEarnings := 0.0

	for y := 0; y <= totalYears; y++ {
		revenue := yearRevenue(m.Products, m.Parameters.ConstructionYears, y)
		costs := yearOperatingCosts(m.OperatingCosts, m.Parameters.ConstructionYears, y)
		capex := yearCapex(m.Investments, y)
		financingInflow := yearFinancingInflow(m.Financings, y)
		debtService := debtServiceForYear(m.Financings, y)
		depreciation := yearlyDepreciationTotal(m.Investments, y)

		taxableIncomeForTax := revenue - costs.Total() - depreciation - debtService.Interest
		taxes := 0.0
		if taxableIncomeForTax > 0 {
			taxes = taxableIncomeForTax * taxRate
		}

		cf := models.CashFlowYear{
			Year:             y,
			OperatingInflow:  revenue,
			OperatingOutflow: costs.Total() + taxes,
			InvestingOutflow: capex,
			FinancingInflow:  financingInflow,
			FinancingOutflow: debtService.Total(),
		}
		cf.NetCashFlow = cf.OperatingInflow - cf.OperatingOutflow - cf.InvestingOutflow + cf.FinancingInflow - cf.FinancingOutflow
		cumulativeCash += cf.NetCashFlow
		cf.CumulativeCashFlow = cumulativeCash
		cf.DiscountedCashFlow = cf.NetCashFlow / math.Pow(1+discountRate, float64(y))
		cashFlows = append(cashFlows, cf)

		var is models.IncomeStatementYear
		is.Year = y
		if y > m.Parameters.ConstructionYears {
			is.Revenue = revenue
			is.CostOfGoodsSold = costs.COGS
			is.GrossProfit = is.Revenue - is.CostOfGoodsSold
			is.OperatingExpenses = costs.OperatingExpenses
			is.Depreciation = depreciation
			is.OperatingIncome = is.GrossProfit - is.OperatingExpenses - is.Depreciation
			is.InterestExpense = debtService.Interest
			is.TaxableIncome = is.OperatingIncome - is.InterestExpense
			if is.TaxableIncome > 0 {
				is.Taxes = is.TaxableIncome * taxRate
			}
			is.NetIncome = is.TaxableIncome - is.Taxes
		}
		cumulativeRetainedEarnings += is.NetIncome
		incomeStatements = append(incomeStatements, is)

		bs := composeBalanceSheetYear(m, y, cumulativeRetainedEarnings)
		balanceSheets = append(balanceSheets, bs)
	}

	return cashFlows, incomeStatements, balanceSheets
}

// composeBalanceSheetYear builds one balance-sheet row, plugging cash
// so the accounting identity always holds (spec §4.4).
func composeBalanceSheetYear(m models.ProjectModel, year int, retainedEarnings float64) models.BalanceSheetYear {
	var bs models.BalanceSheetYear
	bs.Year = year

	cumulativeWorkingCapital := 0.0
	for _, inv := range m.Investments {
		if inv.Year > year {
			continue
		}
		if inv.Category == models.CategoryWorkingCapital {
			cumulativeWorkingCapital += inv.Amount
			continue
		}
		bs.FixedAssets += inv.Amount
	}
	bs.AccumulatedDepreciation = yearlyAccumulatedDepreciationTotal(m.Investments, year)
	bs.NetFixedAssets = bs.FixedAssets - bs.AccumulatedDepreciation

	bs.Receivables = 0
	bs.Inventory = 0.6 * cumulativeWorkingCapital

	bs.TotalAssets = bs.Cash + bs.Receivables + bs.Inventory + bs.NetFixedAssets

	for _, f := range m.Financings {
		if !f.IsLoan() || f.DisbursementYear > year {
			continue
		}
		bs.LongTermDebt += remainingPrincipal(f, year)
	}
	bs.TotalLiabilities = bs.LongTermDebt

	for _, f := range m.Financings {
		if f.Type == models.FinancingEquity && f.DisbursementYear <= year {
			bs.ShareCapital += f.Amount
		}
	}
	bs.RetainedEarnings = retainedEarnings
	bs.TotalEquity = bs.ShareCapital + bs.RetainedEarnings

	// Cash is the plug: chosen so the identity
	// cash + receivables + inventory + netFixedAssets = liabilities + equity
	// holds exactly, clamped to non-negative (spec §4.4).
	plug := (bs.TotalLiabilities + bs.TotalEquity) - (bs.Receivables + bs.Inventory + bs.NetFixedAssets)
	if plug < 0 {
		plug = 0
	}
	bs.Cash = plug
	bs.TotalAssets = bs.Cash + bs.Receivables + bs.Inventory + bs.NetFixedAssets

	return bs
}
