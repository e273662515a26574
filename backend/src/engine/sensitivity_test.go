package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func TestRunSensitivitySample_ZeroVariationMatchesBaseline(t *testing.T) {
	m := singleYearModel()
	base, verr := Project(m)
	require.Nil(t, verr)

	sample, verr2 := RunSensitivitySample(m, models.VariablePrice, 0)
	require.Nil(t, verr2)
	assert.InDelta(t, base.Indicators.NPV, sample.NPV, 1e-6)
}

func TestRunSensitivitySample_PositivePriceVariationRaisesNPV(t *testing.T) {
	m := singleYearModel()
	up, verr := RunSensitivitySample(m, models.VariablePrice, 20)
	require.Nil(t, verr)
	down, verr2 := RunSensitivitySample(m, models.VariablePrice, -20)
	require.Nil(t, verr2)

	assert.Greater(t, up.NPV, down.NPV)
}

func TestRunSensitivity_DefaultVariationsUsedWhenNoneGiven(t *testing.T) {
	m := singleYearModel()
	report, verr := RunSensitivity(m, []string{models.VariablePrice}, nil)
	require.Nil(t, verr)
	assert.Len(t, report.Results, len(DefaultVariations))
}

func TestRunSensitivity_ProducesOneTornadoRowPerVariable(t *testing.T) {
	m := singleYearModel()
	variables := []string{models.VariablePrice, models.VariableInvestment, models.VariableDiscountRate}
	report, verr := RunSensitivity(m, variables, []float64{-10, 0, 10})
	require.Nil(t, verr)
	require.Len(t, report.Tornado, len(variables))

	for i := 1; i < len(report.Tornado); i++ {
		assert.GreaterOrEqual(t, report.Tornado[i-1].Impact, report.Tornado[i].Impact,
			"tornado rows must be sorted by descending impact")
	}
}

func TestBuildTornado_RangeSpansObservedNPVs(t *testing.T) {
	m := singleYearModel()
	baseBundle, verr := Project(m)
	require.Nil(t, verr)

	results := []models.SensitivityResult{
		{Variable: models.VariablePrice, Variation: -10, NPV: baseBundle.Indicators.NPV - 500},
		{Variable: models.VariablePrice, Variation: 10, NPV: baseBundle.Indicators.NPV + 500},
	}
	rows, verr2 := BuildTornado(m, []string{models.VariablePrice}, results)
	require.Nil(t, verr2)
	require.Len(t, rows, 1)
	assert.InDelta(t, baseBundle.Indicators.NPV-500, rows[0].LowNPV, 1e-6)
	assert.InDelta(t, baseBundle.Indicators.NPV+500, rows[0].HighNPV, 1e-6)
	assert.InDelta(t, 1000.0, rows[0].Impact, 1e-6)
}

func TestBuildTornado_SkipsVariablesWithNoSamples(t *testing.T) {
	m := singleYearModel()
	rows, verr := BuildTornado(m, []string{models.VariablePrice}, nil)
	require.Nil(t, verr)
	assert.Empty(t, rows)
}

func TestRunScenarios_EachScenarioIndependentOfTheOthers(t *testing.T) {
	m := singleYearModel()
	scenarios := []models.NamedScenario{
		{Name: "optimistic", Adjustments: []models.Adjustment{{Variable: models.VariablePrice, Delta: 20}}},
		{Name: "pessimistic", Adjustments: []models.Adjustment{{Variable: models.VariablePrice, Delta: -20}}},
	}
	results, verr := RunScenarios(m, scenarios)
	require.Nil(t, verr)
	require.Len(t, results, 2)
	assert.Equal(t, "optimistic", results[0].Name)
	assert.Equal(t, "pessimistic", results[1].Name)
	assert.Greater(t, results[0].Indicators.NPV, results[1].Indicators.NPV)
}

func TestRunSensitivity_InvalidModelPropagatesError(t *testing.T) {
	m := singleYearModel()
	m.Investments[0].SalvageValue = m.Investments[0].Amount + 1

	_, verr := RunSensitivity(m, []string{models.VariablePrice}, []float64{0})
	assert.NotNil(t, verr)
}
