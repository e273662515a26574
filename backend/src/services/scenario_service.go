// backend/src/services/scenario_service.go
package services

import (
	"github.com/meridian-capital/appraisal/backend/src/engine"
	"github.com/meridian-capital/appraisal/backend/src/models"
)

type scenarioService struct{}

func NewScenarioService() ScenarioService {
	return &scenarioService{}
}

func (s *scenarioService) RunScenarios(base models.ProjectModel, scenarios []models.NamedScenario) ([]models.ScenarioResult, error) {
	results, verr := engine.RunScenarios(base, scenarios)
	if verr != nil {
		return nil, verr
	}
	return results, nil
}
