// backend/src/engine/adjustment.go
package engine

import "github.com/meridian-capital/appraisal/backend/src/models"

// ApplyAdjustments returns a copy of m with every recognised
// adjustment applied (spec §4.6, C6). The original model is never
// mutated. Unknown variable names are silently ignored; multiple
// adjustments compose multiplicatively on disjoint fields.
func ApplyAdjustments(m models.ProjectModel, adjustments []models.Adjustment) models.ProjectModel {
	adjusted := m.Clone()
	for _, adj := range adjustments {
		applyOne(&adjusted, adj)
	}
	return adjusted
}

// ApplyAdjustment is the single-delta convenience form, used directly
// by the sensitivity driver (C7).
func ApplyAdjustment(m models.ProjectModel, variable string, deltaPercent float64) models.ProjectModel {
	return ApplyAdjustments(m, []models.Adjustment{{Variable: variable, Delta: deltaPercent}})
}

func applyOne(m *models.ProjectModel, adj models.Adjustment) {
	factor := 1 + adj.Delta/100

	switch adj.Variable {
	case models.VariableRevenue, models.VariablePrice:
		for i := range m.Products {
			m.Products[i].UnitPrice *= factor
		}
	case models.VariableQuantity, models.VariableSales:
		for i := range m.Products {
			for j := range m.Products[i].ProductionSchedule {
				m.Products[i].ProductionSchedule[j].Quantity *= factor
			}
		}
	case models.VariableCosts, models.VariableOperatingCosts:
		for i := range m.OperatingCosts {
			m.OperatingCosts[i].Amount *= factor
		}
	case models.VariableInvestment:
		for i := range m.Investments {
			m.Investments[i].Amount *= factor
		}
	case models.VariableDiscountRate:
		m.Parameters.DiscountRate *= factor
	default:
		// Unrecognised variable names are ignored, per spec §4.6.
	}
}
