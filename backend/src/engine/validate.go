// backend/src/engine/validate.go
package engine

import (
	"fmt"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

var validCategories = map[string]bool{
	models.CategoryLand: true, models.CategoryBuildings: true,
	models.CategoryMachinery: true, models.CategoryEquipment: true,
	models.CategoryVehicles: true, models.CategoryFurniture: true,
	models.CategoryPreproduction: true, models.CategoryWorkingCapital: true,
	models.CategoryOther: true,
}

var validDepreciationMethods = map[string]bool{
	models.DepreciationStraightLine: true, models.DepreciationDecliningBalance: true,
	models.DepreciationNone: true,
}

var validCostTypes = map[string]bool{models.CostTypeFixed: true, models.CostTypeVariable: true}

var validFinancingTypes = map[string]bool{
	models.FinancingEquity: true, models.FinancingLoan: true, models.FinancingGrant: true,
}

// ValidateModel performs the single-pass structural validation spec
// §7.1 calls for. It never returns a partial result: either the model
// is structurally sound and (nil) is returned, or every problem found
// is aggregated into a single *ValidationError.
func ValidateModel(m models.ProjectModel) *ValidationError {
	v := newValidationError()

	p := m.Parameters
	if p.ConstructionYears < 0 || p.ConstructionYears > 10 {
		v.add("parameters.constructionYears must be in [0,10], got %d", p.ConstructionYears)
	}
	if p.OperationYears < 1 || p.OperationYears > 50 {
		v.add("parameters.operationYears must be in [1,50], got %d", p.OperationYears)
	}
	if p.TaxRate < 0 || p.TaxRate > 100 {
		v.add("parameters.taxRate must be in [0,100], got %g", p.TaxRate)
	}

	for i, inv := range m.Investments {
		ref := fmt.Sprintf("investments[%d]", i)
		if !validCategories[inv.Category] {
			v.add("%s.category is unknown: %q", ref, inv.Category)
		}
		if inv.Amount < 0 {
			v.add("%s.amount cannot be negative", ref)
		}
		if inv.Year < 0 {
			v.add("%s.year cannot be negative", ref)
		}
		if inv.UsefulLife < 1 {
			v.add("%s.usefulLife must be >= 1", ref)
		}
		if inv.SalvageValue < 0 {
			v.add("%s.salvageValue cannot be negative", ref)
		}
		if inv.SalvageValue > inv.Amount {
			v.add("%s.salvageValue (%g) exceeds amount (%g)", ref, inv.SalvageValue, inv.Amount)
		}
		if !validDepreciationMethods[inv.DepreciationMethod] {
			v.add("%s.depreciationMethod is unknown: %q", ref, inv.DepreciationMethod)
		}
		if inv.DepreciationRate < 0 || inv.DepreciationRate > 100 {
			v.add("%s.depreciationRate must be in [0,100]", ref)
		}
	}

	for i, prod := range m.Products {
		ref := fmt.Sprintf("products[%d]", i)
		if prod.UnitPrice < 0 {
			v.add("%s.unitPrice cannot be negative", ref)
		}
		if prod.PriceEscalation < 0 || prod.PriceEscalation > 100 {
			v.add("%s.priceEscalation must be in [0,100]", ref)
		}
		if prod.InstalledCapacity < 0 {
			v.add("%s.installedCapacity cannot be negative", ref)
		}
		seenYears := make(map[int]bool)
		for j, row := range prod.ProductionSchedule {
			rref := fmt.Sprintf("%s.productionSchedule[%d]", ref, j)
			if row.Year < 1 || row.Year > p.OperationYears {
				v.add("%s.year (%d) out of range [1,%d]", rref, row.Year, p.OperationYears)
			}
			if seenYears[row.Year] {
				v.add("%s.year (%d) duplicates another row for this product", rref, row.Year)
			}
			seenYears[row.Year] = true
			if row.CapacityUtilization < 0 || row.CapacityUtilization > 100 {
				v.add("%s.capacityUtilization must be in [0,100]", rref)
			}
			if row.Quantity < 0 {
				v.add("%s.quantity cannot be negative", rref)
			}
		}
	}

	for i, c := range m.OperatingCosts {
		ref := fmt.Sprintf("operatingCosts[%d]", i)
		if !validCostTypes[c.CostType] {
			v.add("%s.costType is unknown: %q", ref, c.CostType)
		}
		if c.Amount < 0 {
			v.add("%s.amount cannot be negative", ref)
		}
		if c.UnitCost < 0 {
			v.add("%s.unitCost cannot be negative", ref)
		}
		if c.EscalationRate < 0 || c.EscalationRate > 100 {
			v.add("%s.escalationRate must be in [0,100]", ref)
		}
		if c.StartYear < 1 {
			v.add("%s.startYear must be >= 1", ref)
		}
	}

	for i, f := range m.Financings {
		ref := fmt.Sprintf("financings[%d]", i)
		if !validFinancingTypes[f.Type] {
			v.add("%s.type is unknown: %q", ref, f.Type)
		}
		if f.Amount < 0 {
			v.add("%s.amount cannot be negative", ref)
		}
		if f.InterestRate < 0 || f.InterestRate > 100 {
			v.add("%s.interestRate must be in [0,100]", ref)
		}
		if f.DisbursementYear < 0 {
			v.add("%s.disbursementYear cannot be negative", ref)
		}
		if f.TermYears < 0 {
			v.add("%s.termYears cannot be negative", ref)
		}
		if f.GracePeriod < 0 {
			v.add("%s.gracePeriod cannot be negative", ref)
		}
		if f.IsLoan() {
			if f.RepaymentStartYear < 1 {
				v.add("%s.repaymentStartYear must be >= 1 for a loan", ref)
			}
			if f.TermYears <= f.GracePeriod {
				v.add("%s.gracePeriod (%d) must be less than termYears (%d)", ref, f.GracePeriod, f.TermYears)
			}
		}
	}

	if !v.HasProblems() {
		return nil
	}
	return v
}

// CollectWarnings runs the non-fatal diagnostic checks spec §7.4 calls
// WARNING conditions: they never abort the run, but are worth telling
// the caller about. ValidateModel must have already passed.
func CollectWarnings(m models.ProjectModel) []models.Diagnostic {
	var diags []models.Diagnostic
	for _, f := range m.Financings {
		if !f.IsLoan() {
			continue
		}
		if f.TermYears > 0 && f.GracePeriod == f.TermYears-1 {
			diags = append(diags, models.Diagnostic{
				Code:    "LOAN_FULLY_IN_GRACE",
				Message: fmt.Sprintf("financing %q: gracePeriod (%d) leaves a single repayment year for the full principal", f.Name, f.GracePeriod),
			})
		}
	}
	for _, inv := range m.Investments {
		if !inv.IsDepreciable() || inv.Amount <= inv.SalvageValue {
			continue
		}
		if inv.EffectiveMethod() == models.DepreciationDecliningBalance && inv.DepreciationRate <= 0 {
			diags = append(diags, models.Diagnostic{
				Code:    "ZERO_DECLINING_RATE",
				Message: fmt.Sprintf("investment %q: declining-balance depreciation with a zero rate never reaches salvage value", inv.ID),
			})
		}
	}
	return diags
}
