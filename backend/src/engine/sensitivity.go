// backend/src/engine/sensitivity.go
package engine

import (
	"sort"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

// DefaultVariations is the percentage sweep spec §4.7 names as the
// default when a caller doesn't supply its own.
var DefaultVariations = []float64{-20, -15, -10, -5, 0, 5, 10, 15, 20}

// RunSensitivitySample applies a single (variable, variation) delta to
// the base model and runs the façade, returning one raw sample. It is
// exported so a caller-side worker pool (spec §5, "embarrassingly
// parallel by construction") can fan this out itself without
// duplicating the adjustment/projection wiring.
func RunSensitivitySample(base models.ProjectModel, variable string, variation float64) (models.SensitivityResult, *ValidationError) {
	adjusted := ApplyAdjustment(base, variable, variation)
	bundle, verr := Project(adjusted)
	if verr != nil {
		return models.SensitivityResult{}, verr
	}
	return models.SensitivityResult{
		Variable:  variable,
		Variation: variation,
		NPV:       bundle.Indicators.NPV,
		IRR:       bundle.Indicators.IRR,
	}, nil
}

// RunSensitivity sweeps every (variable, variation) pair sequentially
// and builds the tornado-ordered summary (spec §4.7, C7). Callers that
// want to parallelise the sweep should use RunSensitivitySample
// directly instead (see services/sensitivity_service.go).
func RunSensitivity(base models.ProjectModel, variables []string, variations []float64) (*models.SensitivityReport, *ValidationError) {
	if len(variations) == 0 {
		variations = DefaultVariations
	}

	var results []models.SensitivityResult
	for _, v := range variables {
		for _, variation := range variations {
			sample, verr := RunSensitivitySample(base, v, variation)
			if verr != nil {
				return nil, verr
			}
			results = append(results, sample)
		}
	}

	tornado, verr := BuildTornado(base, variables, results)
	if verr != nil {
		return nil, verr
	}

	return &models.SensitivityReport{Results: results, Tornado: tornado}, nil
}

// BuildTornado reduces a set of raw sensitivity samples into one
// tornado row per variable (spec §4.7): the minimum and maximum NPV
// observed across a variable's variations and the baseline, sorted
// descending by impact.
func BuildTornado(base models.ProjectModel, variables []string, results []models.SensitivityResult) ([]models.TornadoRow, *ValidationError) {
	baseBundle, verr := Project(base)
	if verr != nil {
		return nil, verr
	}
	baseNPV := baseBundle.Indicators.NPV

	rows := make([]models.TornadoRow, 0, len(variables))
	for _, v := range variables {
		low, high := baseNPV, baseNPV
		seen := false
		for _, r := range results {
			if r.Variable != v {
				continue
			}
			seen = true
			if r.NPV < low {
				low = r.NPV
			}
			if r.NPV > high {
				high = r.NPV
			}
		}
		if !seen {
			continue
		}
		impact := high - low
		if impact < 0 {
			impact = -impact
		}
		rows = append(rows, models.TornadoRow{
			Variable: v,
			LowNPV:   low,
			BaseNPV:  baseNPV,
			HighNPV:  high,
			Impact:   impact,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Impact > rows[j].Impact })
	return rows, nil
}

// RunScenarios evaluates each named scenario's adjustment bundle
// against the base model, in the teacher's spirit of a small
// generalisation over the ad-hoc sweep (SPEC_FULL.md §4, "Named
// scenarios").
func RunScenarios(base models.ProjectModel, scenarios []models.NamedScenario) ([]models.ScenarioResult, *ValidationError) {
	results := make([]models.ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		adjusted := ApplyAdjustments(base, sc.Adjustments)
		bundle, verr := Project(adjusted)
		if verr != nil {
			return nil, verr
		}
		results = append(results, models.ScenarioResult{Name: sc.Name, Indicators: bundle.Indicators})
	}
	return results, nil
}
