// backend/src/models/scenario.go
package models

// Adjustment is a single named-variable percentage delta recognised by
// the adjustment layer (C6). Delta is a percent, e.g. -10 means -10%.
type Adjustment struct {
	Variable string  `json:"variable"`
	Delta    float64 `json:"delta"`
}

// Recognised adjustment variable names (spec §4.6). Unknown names are
// silently ignored by the adjustment layer.
const (
	VariableRevenue        = "revenue"
	VariablePrice          = "price"
	VariableQuantity       = "quantity"
	VariableSales          = "sales"
	VariableCosts          = "costs"
	VariableOperatingCosts = "operatingCosts"
	VariableInvestment     = "investment"
	VariableDiscountRate   = "discountRate"
)

// SensitivityResult is one (variable, variation) sample collected by
// the sensitivity driver (C7).
type SensitivityResult struct {
	Variable  string  `json:"variable"`
	Variation float64 `json:"variation"`
	NPV       float64 `json:"npv"`
	IRR       float64 `json:"irr"`
}

// TornadoRow summarises one variable's impact on NPV across all of its
// sampled variations, for tornado-chart rendering.
type TornadoRow struct {
	Variable string  `json:"variable"`
	LowNPV   float64 `json:"lowNpv"`
	BaseNPV  float64 `json:"baseNpv"`
	HighNPV  float64 `json:"highNpv"`
	Impact   float64 `json:"impact"`
}

// SensitivityReport is the full output of a sensitivity sweep: every
// raw sample plus the tornado-ordered summary.
type SensitivityReport struct {
	Results []SensitivityResult `json:"results"`
	Tornado []TornadoRow        `json:"tornado"`
}

// NamedScenario is a caller-defined bundle of adjustments evaluated as
// a single unit (e.g. "optimistic", "pessimistic"). This generalises
// spec.md's ad-hoc sensitivity sweep into a reusable named preset, per
// SPEC_FULL.md §4.
type NamedScenario struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Adjustments []Adjustment `json:"adjustments"`
}

// ScenarioResult pairs a named scenario with the indicator bundle
// produced by running the adjusted model through the façade.
type ScenarioResult struct {
	Name       string              `json:"name"`
	Indicators FinancialIndicators `json:"indicators"`
}
