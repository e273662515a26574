// backend/src/engine/indicators.go
package engine

import (
	"math"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

const (
	irrInitialGuess    = 0.10
	irrMaxIterations   = 100
	irrTolerance       = 1e-4
	irrDerivativeFloor = 1e-10
	irrBisectLow       = -0.999
	irrBisectHigh      = 10.0
	irrBisectMaxIter   = 200
)

// NPV computes the net present value of a cash flow series discounted
// at ratePercent (spec §4.5, C5). A zero rate degenerates to a plain
// sum, matching the spec's explicit callout.
func NPV(cashFlows []float64, ratePercent float64) float64 {
	if ratePercent == 0 {
		total := 0.0
		for _, cf := range cashFlows {
			total += cf
		}
		return total
	}
	r := ratePercent / 100
	total := 0.0
	for t, cf := range cashFlows {
		total += cf / math.Pow(1+r, float64(t))
	}
	return total
}

func npvDerivative(cashFlows []float64, r float64) float64 {
	d := 0.0
	for t, cf := range cashFlows {
		if t == 0 {
			continue
		}
		tf := float64(t)
		d += -tf * cf / math.Pow(1+r, tf+1)
	}
	return d
}

func npvAtFraction(cashFlows []float64, r float64) float64 {
	total := 0.0
	for t, cf := range cashFlows {
		total += cf / math.Pow(1+r, float64(t))
	}
	return total
}

// IRR finds the discount rate (as a percent) that zeroes NPV, using
// Newton-Raphson from a 10% seed with a bisection fallback on a
// bracketed sign change (spec §4.5 and §9 "IRR robustness"). The
// second return value is false when neither method converges; the
// first return value is meaningless in that case (spec §7.2,
// NOT_CONVERGED).
func IRR(cashFlows []float64) (float64, bool) {
	if len(cashFlows) < 2 {
		return 0, false
	}

	r := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		npv := npvAtFraction(cashFlows, r)
		deriv := npvDerivative(cashFlows, r)
		if math.Abs(deriv) < irrDerivativeFloor {
			break
		}
		next := r - npv/deriv
		if math.Abs(next-r) < irrTolerance {
			return next * 100, true
		}
		r = next
	}

	if rate, ok := bisectIRR(cashFlows); ok {
		return rate * 100, true
	}
	return 0, false
}

// bisectIRR brackets a sign change of NPV(r) over [irrBisectLow,
// irrBisectHigh] and bisects to a root. It is the fallback spec §9
// requires when Newton-Raphson fails on a series with multiple sign
// changes or a runaway derivative.
func bisectIRR(cashFlows []float64) (float64, bool) {
	const steps = 200
	lo, hi := irrBisectLow, irrBisectHigh
	step := (hi - lo) / steps

	var braLo, braHi float64
	found := false
	prevR := lo
	prevNPV := npvAtFraction(cashFlows, prevR)
	for i := 1; i <= steps; i++ {
		r := lo + float64(i)*step
		v := npvAtFraction(cashFlows, r)
		if (prevNPV <= 0 && v >= 0) || (prevNPV >= 0 && v <= 0) {
			braLo, braHi = prevR, r
			found = true
			break
		}
		prevR, prevNPV = r, v
	}
	if !found {
		return 0, false
	}

	for i := 0; i < irrBisectMaxIter; i++ {
		mid := (braLo + braHi) / 2
		v := npvAtFraction(cashFlows, mid)
		if math.Abs(v) < irrTolerance || (braHi-braLo) < irrTolerance {
			return mid, true
		}
		loVal := npvAtFraction(cashFlows, braLo)
		if (loVal <= 0 && v >= 0) || (loVal >= 0 && v <= 0) {
			braHi = mid
		} else {
			braLo = mid
		}
	}
	return (braLo + braHi) / 2, true
}

// MIRR computes the modified internal rate of return, using
// discountRatePercent as both the finance and reinvestment rate (spec
// §4.5). A series with no negative flow (all zero or positive-only)
// yields zero PV_neg and MIRR is defined as 0 in that case; a
// negative-only series has zero FV_pos and yields -100.
func MIRR(cashFlows []float64, discountRatePercent float64) float64 {
	n := len(cashFlows) - 1
	if n <= 0 {
		return 0
	}
	rate := discountRatePercent / 100

	pvNeg := 0.0
	fvPos := 0.0
	for t, cf := range cashFlows {
		if cf < 0 {
			pvNeg += cf / math.Pow(1+rate, float64(t))
		} else if cf > 0 {
			fvPos += cf * math.Pow(1+rate, float64(n-t))
		}
	}
	if pvNeg == 0 {
		return 0
	}
	return (math.Pow(-fvPos/pvNeg, 1/float64(n)) - 1) * 100
}

// payback finds the smallest real period p at which the cumulative
// sum of series crosses zero, via linear interpolation within the
// crossing year. It returns -1 if the series never turns
// non-negative (spec §4.5).
func payback(series []float64) float64 {
	cumulative := 0.0
	prevCumulative := 0.0
	for t, v := range series {
		prevCumulative = cumulative
		cumulative += v
		if cumulative >= 0 {
			if t == 0 {
				return 0
			}
			if v == 0 {
				return float64(t)
			}
			fraction := -prevCumulative / v
			return float64(t-1) + fraction
		}
	}
	return -1
}

// SimplePayback runs payback() on the raw net cash flow series.
func SimplePayback(cashFlows []float64) float64 {
	return payback(cashFlows)
}

// DiscountedPayback runs payback() on the discounted cash flow series.
func DiscountedPayback(cashFlows []float64, discountRatePercent float64) float64 {
	discounted := make([]float64, len(cashFlows))
	r := discountRatePercent / 100
	for t, cf := range cashFlows {
		discounted[t] = cf / math.Pow(1+r, float64(t))
	}
	return payback(discounted)
}

// ROI is total net income over total investment, expressed as a
// percent; zero when there is no investment to divide by (spec §7.3,
// UNDEFINED handled as 0, never NaN).
func ROI(totalNetIncome, totalInvestment float64) float64 {
	if totalInvestment == 0 {
		return 0
	}
	return totalNetIncome / totalInvestment * 100
}

// BCR is the benefit-cost ratio: PV of positive operating cash flows
// over the initial outlay plus the PV of later negative cash flows.
// Zero when the denominator is zero.
func BCR(cashFlows []float64, discountRatePercent float64) float64 {
	if len(cashFlows) == 0 {
		return 0
	}
	r := discountRatePercent / 100

	pvBenefits := 0.0
	pvCosts := math.Abs(cashFlows[0])
	for t := 1; t < len(cashFlows); t++ {
		cf := cashFlows[t]
		discounted := cf / math.Pow(1+r, float64(t))
		if cf >= 0 {
			pvBenefits += discounted
		} else {
			pvCosts += -discounted
		}
	}
	if pvCosts == 0 {
		return 0
	}
	return pvBenefits / pvCosts
}

// BreakEven computes the output level at which revenue equals total
// cost. A non-positive contribution margin returns the {-1,-1}
// sentinel rather than a divide-by-zero or negative unit count (spec
// §4.5, §7.3).
func BreakEven(fixedCosts, unitPrice, variableCostPerUnit float64) models.BreakEven {
	margin := unitPrice - variableCostPerUnit
	if margin <= 0 {
		return models.BreakEven{Units: -1, Revenue: -1}
	}
	units := fixedCosts / margin
	return models.BreakEven{Units: units, Revenue: units * unitPrice}
}
