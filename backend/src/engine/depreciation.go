// backend/src/engine/depreciation.go
package engine

import "github.com/meridian-capital/appraisal/backend/src/models"

// annualDepreciation returns the depreciation charge attributable to
// queryYear for a single asset (spec §4.1, C1). It is a pure function
// of the asset's own parameters; category-based exclusions (land,
// working capital) are the caller's responsibility.
func annualDepreciation(inv models.Investment, queryYear int) float64 {
	if queryYear < inv.Year {
		return 0
	}
	if inv.UsefulLife <= 0 {
		return 0
	}
	if queryYear-inv.Year >= inv.UsefulLife {
		return 0
	}
	if inv.Amount <= inv.SalvageValue {
		return 0
	}

	switch inv.EffectiveMethod() {
	case models.DepreciationStraightLine:
		return (inv.Amount - inv.SalvageValue) / float64(inv.UsefulLife)
	case models.DepreciationDecliningBalance:
		return decliningBalanceCharge(inv, queryYear)
	default:
		return 0
	}
}

// decliningBalanceCharge walks the book value forward from the
// purchase year to queryYear, clamping so book value never drops
// below salvage. Once book value reaches salvage, all further charges
// are zero.
func decliningBalanceCharge(inv models.Investment, queryYear int) float64 {
	rate := inv.DepreciationRate / 100
	bookValue := inv.Amount
	for y := inv.Year; y <= queryYear; y++ {
		if bookValue <= inv.SalvageValue {
			return 0
		}
		charge := bookValue * rate
		if charge > bookValue-inv.SalvageValue {
			charge = bookValue - inv.SalvageValue
		}
		if y == queryYear {
			return charge
		}
		bookValue -= charge
	}
	return 0
}

// accumulatedDepreciation sums annual charges from the purchase year
// through queryYear inclusive, clamped to cost - salvageValue.
func accumulatedDepreciation(inv models.Investment, queryYear int) float64 {
	if queryYear < inv.Year {
		return 0
	}
	depreciableBase := inv.Amount - inv.SalvageValue
	if depreciableBase <= 0 {
		return 0
	}
	total := 0.0
	for y := inv.Year; y <= queryYear; y++ {
		total += annualDepreciation(inv, y)
	}
	if total > depreciableBase {
		return depreciableBase
	}
	return total
}

// yearlyDepreciationTotal sums the annual depreciation charge across
// every depreciable investment for a single absolute year.
func yearlyDepreciationTotal(investments []models.Investment, year int) float64 {
	total := 0.0
	for _, inv := range investments {
		if !inv.IsDepreciable() {
			continue
		}
		total += annualDepreciation(inv, year)
	}
	return total
}

// yearlyAccumulatedDepreciationTotal sums accumulated depreciation
// through a year across every depreciable investment, used by the
// balance sheet composer (C4).
func yearlyAccumulatedDepreciationTotal(investments []models.Investment, year int) float64 {
	total := 0.0
	for _, inv := range investments {
		if !inv.IsDepreciable() {
			continue
		}
		total += accumulatedDepreciation(inv, year)
	}
	return total
}
