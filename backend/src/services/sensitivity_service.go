// backend/src/services/sensitivity_service.go
package services

import (
	"sort"
	"sync"

	"go.uber.org/atomic"

	"github.com/meridian-capital/appraisal/backend/src/engine"
	"github.com/meridian-capital/appraisal/backend/src/logger"
	"github.com/meridian-capital/appraisal/backend/src/models"
)

type sensitivitySample struct {
	variable  string
	variation float64
}

// pooledSensitivityService fans a sensitivity sweep out across a fixed
// worker pool (spec: "embarrassingly parallel by construction"),
// tracking progress with a lock-free counter instead of a mutex.
type pooledSensitivityService struct {
	poolSize int
}

func NewSensitivityService(poolSize int) SensitivityService {
	if poolSize < 1 {
		poolSize = 1
	}
	return &pooledSensitivityService{poolSize: poolSize}
}

func (s *pooledSensitivityService) RunSensitivity(base models.ProjectModel, variables []string, variations []float64) (*models.SensitivityReport, error) {
	if len(variations) == 0 {
		variations = engine.DefaultVariations
	}

	samples := make([]sensitivitySample, 0, len(variables)*len(variations))
	for _, v := range variables {
		for _, variation := range variations {
			samples = append(samples, sensitivitySample{variable: v, variation: variation})
		}
	}

	results := make([]models.SensitivityResult, len(samples))
	errs := make([]error, len(samples))

	var completed atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.poolSize; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sample, verr := engine.RunSensitivitySample(base, samples[i].variable, samples[i].variation)
				if verr != nil {
					errs[i] = verr
				} else {
					results[i] = sample
				}
				done := completed.Add(1)
				logger.L.Debug("Sensitivity sample complete", "progress", done, "total", len(samples))
			}
		}()
	}

	for i := range samples {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	tornado, verr := engine.BuildTornado(base, variables, results)
	if verr != nil {
		return nil, verr
	}
	sort.SliceStable(tornado, func(i, j int) bool { return tornado[i].Impact > tornado[j].Impact })

	return &models.SensitivityReport{Results: results, Tornado: tornado}, nil
}
