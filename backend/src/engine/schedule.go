// backend/src/engine/schedule.go
package engine

import (
	"math"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

// yearRevenue computes total revenue for absolute year Y across every
// product (spec §4.3). Revenue only exists strictly after the
// construction phase; escalation is compounded annually, anchored so
// the first applicable operating year is unescalated.
func yearRevenue(products []models.Product, constructionYears, year int) float64 {
	if year <= constructionYears {
		return 0
	}
	operatingYear := year - constructionYears

	total := 0.0
	for _, p := range products {
		row, ok := p.ScheduleForYear(operatingYear)
		if !ok {
			continue
		}
		escalated := p.UnitPrice * math.Pow(1+p.PriceEscalation/100, float64(operatingYear-1))
		total += row.Quantity * escalated
	}
	return total
}

// costSplit is the COGS/operating-expense split for a single year.
type costSplit struct {
	COGS               float64
	OperatingExpenses  float64
}

// Total is the combined operating cost for the year.
func (c costSplit) Total() float64 { return c.COGS + c.OperatingExpenses }

// yearOperatingCosts computes the escalated COGS/opex split for
// absolute year Y (spec §4.3). Costs whose StartYear has not yet
// arrived contribute nothing.
func yearOperatingCosts(costs []models.OperatingCost, constructionYears, year int) costSplit {
	var split costSplit
	if year <= constructionYears {
		return split
	}
	operatingYear := year - constructionYears

	for _, c := range costs {
		if c.StartYear > operatingYear {
			continue
		}
		escalated := c.Amount * math.Pow(1+c.EscalationRate/100, float64(operatingYear-c.StartYear))
		switch c.CostType {
		case models.CostTypeVariable:
			split.COGS += escalated
		case models.CostTypeFixed:
			split.OperatingExpenses += escalated
		}
	}
	return split
}

// yearCapex sums capital outflows for investments landing in absolute
// year Y.
func yearCapex(investments []models.Investment, year int) float64 {
	total := 0.0
	for _, inv := range investments {
		if inv.Year == year {
			total += inv.Amount
		}
	}
	return total
}

// yearFinancingInflow sums disbursements landing in absolute year Y
// across every financing instrument (equity, loans, grants alike).
func yearFinancingInflow(financings []models.Financing, year int) float64 {
	total := 0.0
	for _, f := range financings {
		if f.DisbursementYear == year {
			total += f.Amount
		}
	}
	return total
}
