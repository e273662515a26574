// backend/src/models/project.go
package models

import "time"

// Investment categories. Land and WorkingCapital are non-depreciable
// regardless of the DepreciationMethod stated on the record.
const (
	CategoryLand            = "land"
	CategoryBuildings       = "buildings"
	CategoryMachinery       = "machinery"
	CategoryEquipment       = "equipment"
	CategoryVehicles        = "vehicles"
	CategoryFurniture       = "furniture"
	CategoryPreproduction   = "preproduction"
	CategoryWorkingCapital  = "working_capital"
	CategoryOther           = "other"
)

// Depreciation methods recognised by the engine's depreciation kernel.
const (
	DepreciationStraightLine    = "straight_line"
	DepreciationDecliningBalance = "declining_balance"
	DepreciationNone            = "none"
)

// Operating cost types.
const (
	CostTypeFixed    = "fixed"
	CostTypeVariable = "variable"
)

// Financing instrument types.
const (
	FinancingEquity = "equity"
	FinancingLoan   = "loan"
	FinancingGrant  = "grant"
)

// ProjectParameters holds the macro parameters of a project run. All
// rates are expressed in percent, not fractions.
type ProjectParameters struct {
	ConstructionYears int       `json:"constructionYears"`
	OperationYears    int       `json:"operationYears"`
	DiscountRate      float64   `json:"discountRate"`
	InflationRate     float64   `json:"inflationRate"`
	TaxRate           float64   `json:"taxRate"`
	StartDate         time.Time `json:"startDate"`
}

// Investment is a capital expenditure item with a depreciation profile.
type Investment struct {
	ID                string  `json:"id"`
	Category          string  `json:"category"`
	Amount            float64 `json:"amount"`
	Year              int     `json:"year"`
	UsefulLife        int     `json:"usefulLife"`
	SalvageValue      float64 `json:"salvageValue"`
	DepreciationMethod string `json:"depreciationMethod"`
	DepreciationRate  float64 `json:"depreciationRate"`
}

// IsDepreciable reports whether the investment's category participates
// in the depreciation kernel at all, independent of its stated method.
func (inv Investment) IsDepreciable() bool {
	return inv.Category != CategoryLand && inv.Category != CategoryWorkingCapital
}

// EffectiveMethod returns the depreciation method actually applied to
// this investment, forcing non-depreciable categories to "none".
func (inv Investment) EffectiveMethod() string {
	if !inv.IsDepreciable() {
		return DepreciationNone
	}
	return inv.DepreciationMethod
}

// ProductionScheduleRow is one year's planned output for a product.
type ProductionScheduleRow struct {
	Year                int     `json:"year"`
	CapacityUtilization float64 `json:"capacityUtilization"`
	Quantity            float64 `json:"quantity"`
}

// Product is a saleable output of the project with an annual production
// schedule and an escalating unit price.
type Product struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	Unit               string                   `json:"unit"`
	UnitPrice          float64                  `json:"unitPrice"`
	PriceEscalation    float64                  `json:"priceEscalation"`
	InstalledCapacity  float64                  `json:"installedCapacity"`
	CapacityUnit       string                   `json:"capacityUnit"`
	ProductionSchedule []ProductionScheduleRow  `json:"productionSchedule"`
}

// ScheduleForYear returns the production schedule row for the given
// operating year, and whether one was found. Missing years imply zero
// output at the caller.
func (p Product) ScheduleForYear(operatingYear int) (ProductionScheduleRow, bool) {
	for _, row := range p.ProductionSchedule {
		if row.Year == operatingYear {
			return row, true
		}
	}
	return ProductionScheduleRow{}, false
}

// OperatingCost is a recurring cost line, either fixed or driven by
// unit volume, escalated annually from its StartYear.
type OperatingCost struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	CostType       string  `json:"costType"`
	Amount         float64 `json:"amount"`
	UnitCost       float64 `json:"unitCost"`
	EscalationRate float64 `json:"escalationRate"`
	StartYear      int     `json:"startYear"`
}

// Financing is a source of funds: equity, a loan, or a grant. Only
// loans carry interest/term/grace semantics.
type Financing struct {
	ID                 string  `json:"id"`
	Type               string  `json:"type"`
	Name               string  `json:"name"`
	Amount             float64 `json:"amount"`
	InterestRate       float64 `json:"interestRate"`
	TermYears          int     `json:"termYears"`
	GracePeriod        int     `json:"gracePeriod"`
	DisbursementYear   int     `json:"disbursementYear"`
	RepaymentStartYear int     `json:"repaymentStartYear"`
}

// IsLoan reports whether this financing instrument amortises.
func (f Financing) IsLoan() bool { return f.Type == FinancingLoan }

// ProjectModel is the frozen input snapshot the engine consumes. It is
// never mutated by the engine; every operation that needs a variant of
// it (adjustment layer, sensitivity driver) returns a fresh copy.
type ProjectModel struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Parameters     ProjectParameters `json:"parameters"`
	Investments    []Investment      `json:"investments"`
	Products       []Product         `json:"products"`
	OperatingCosts []OperatingCost   `json:"operatingCosts"`
	Financings     []Financing       `json:"financings"`

	// BreakEvenUnitPrice and BreakEvenVariableCostPerUnit are the
	// explicit break-even parameters the façade uses for C5's
	// break-even calculation (see DESIGN.md "break-even averages").
	// When zero, the façade derives a default (first product's unit
	// price, sum of variable operating costs' UnitCost).
	BreakEvenUnitPrice           float64 `json:"breakEvenUnitPrice,omitempty"`
	BreakEvenVariableCostPerUnit float64 `json:"breakEvenVariableCostPerUnit,omitempty"`
	BreakEvenFixedCosts          float64 `json:"breakEvenFixedCosts,omitempty"`
}

// TotalYears is the length of the project's timeline: construction
// plus operation, inclusive of year 0.
func (p ProjectModel) TotalYears() int {
	return p.Parameters.ConstructionYears + p.Parameters.OperationYears
}

// Clone returns a deep copy of the model so adjustment/sensitivity
// operations never mutate the caller's original.
func (p ProjectModel) Clone() ProjectModel {
	clone := p
	clone.Investments = append([]Investment(nil), p.Investments...)

	clone.Products = make([]Product, len(p.Products))
	for i, prod := range p.Products {
		prodCopy := prod
		prodCopy.ProductionSchedule = append([]ProductionScheduleRow(nil), prod.ProductionSchedule...)
		clone.Products[i] = prodCopy
	}

	clone.OperatingCosts = append([]OperatingCost(nil), p.OperatingCosts...)
	clone.Financings = append([]Financing(nil), p.Financings...)
	return clone
}
