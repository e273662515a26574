package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPV_S1(t *testing.T) {
	cashFlows := []float64{-1000, 300, 400, 500, 600}
	assert.InDelta(t, 388.97, NPV(cashFlows, 10), 1.0)
}

func TestNPV_ZeroRateIsPlainSum(t *testing.T) {
	cashFlows := []float64{-1000, 300, 400, 500, 600}
	assert.InDelta(t, 800.0, NPV(cashFlows, 0), 1e-9)
}

func TestIRR_S1(t *testing.T) {
	cashFlows := []float64{-1000, 300, 400, 500, 600}
	irr, ok := IRR(cashFlows)
	require.True(t, ok)
	assert.InDelta(t, 24.89, irr, 0.5)
}

func TestIRR_BreakEven_S2(t *testing.T) {
	cashFlows := []float64{-1000, 250, 250, 250, 250}
	irr, ok := IRR(cashFlows)
	require.True(t, ok)
	assert.InDelta(t, 0.0, irr, 0.5)
}

func TestIRR_NoRealRoot_NotConverged(t *testing.T) {
	// All cash flows the same sign: no zero crossing exists.
	cashFlows := []float64{100, 100, 100, 100}
	_, ok := IRR(cashFlows)
	assert.False(t, ok)
}

func TestIRR_MonotoneNPVAroundRoot(t *testing.T) {
	cashFlows := []float64{-1000, 300, 400, 500, 600}
	irr, ok := IRR(cashFlows)
	require.True(t, ok)

	npvAtIRR := NPV(cashFlows, irr)
	assert.InDelta(t, 0.0, npvAtIRR, 1.0)

	lower := NPV(cashFlows, irr-5)
	assert.Greater(t, lower, npvAtIRR)
}

func TestSimplePayback_S1(t *testing.T) {
	cashFlows := []float64{-1000, 300, 400, 500, 600}
	assert.InDelta(t, 2.6, SimplePayback(cashFlows), 1e-9)
}

func TestSimplePayback_NeverRecovers(t *testing.T) {
	cashFlows := []float64{-1000, 10, 10, 10}
	assert.Equal(t, -1.0, SimplePayback(cashFlows))
}

func TestDiscountedPaybackAtLeastSimplePayback(t *testing.T) {
	cashFlows := []float64{-1000, 300, 400, 500, 600}
	simple := SimplePayback(cashFlows)
	discounted := DiscountedPayback(cashFlows, 10)
	assert.GreaterOrEqual(t, discounted, simple)
}

func TestROI_ZeroInvestmentIsZero(t *testing.T) {
	assert.Equal(t, 0.0, ROI(1000, 0))
}

func TestROI(t *testing.T) {
	assert.InDelta(t, 50.0, ROI(500, 1000), 1e-9)
}

func TestBCR_ZeroCostIsZero(t *testing.T) {
	assert.Equal(t, 0.0, BCR([]float64{}, 10))
}

func TestMIRR_ZeroPVNegIsZero(t *testing.T) {
	assert.Equal(t, 0.0, MIRR([]float64{100, 200, 300}, 10))
}

func TestBreakEven_S6(t *testing.T) {
	be := BreakEven(10000, 100, 60)
	assert.InDelta(t, 250.0, be.Units, 1e-9)
	assert.InDelta(t, 25000.0, be.Revenue, 1e-9)

	sentinel := BreakEven(10000, 100, 100)
	assert.Equal(t, -1.0, sentinel.Units)
	assert.Equal(t, -1.0, sentinel.Revenue)
}

func TestBreakEven_NegativeMargin(t *testing.T) {
	sentinel := BreakEven(10000, 50, 100)
	assert.Equal(t, -1.0, sentinel.Units)
	assert.Equal(t, -1.0, sentinel.Revenue)
}

func TestNPV_MatchesManualSum(t *testing.T) {
	cashFlows := []float64{-500, 100, 100, 100, 100, 100}
	want := 0.0
	for t2, cf := range cashFlows {
		want += cf / math.Pow(1.08, float64(t2))
	}
	assert.InDelta(t, want, NPV(cashFlows, 8), 1e-9)
}
