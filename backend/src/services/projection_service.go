// backend/src/services/projection_service.go
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"

	"github.com/meridian-capital/appraisal/backend/src/engine"
	"github.com/meridian-capital/appraisal/backend/src/logger"
	"github.com/meridian-capital/appraisal/backend/src/models"
)

// cachedProjectionService memoizes engine.Project results keyed by a
// hash of the input model, so repeated evaluations of the same model
// (e.g. a client re-fetching a dashboard) skip the statement/indicator
// recomputation entirely.
type cachedProjectionService struct {
	cache *cache.Cache
}

func NewProjectionService(reportCache *cache.Cache) ProjectionService {
	return &cachedProjectionService{cache: reportCache}
}

func (s *cachedProjectionService) Project(m models.ProjectModel) (*models.ProjectionBundle, error) {
	key, err := modelCacheKey(m)
	if err != nil {
		logger.L.Warn("Failed to compute projection cache key, bypassing cache", "error", err)
		return runProjection(m)
	}

	if cached, ok := s.cache.Get(key); ok {
		bundle := cached.(*models.ProjectionBundle)
		return bundle, nil
	}

	bundle, err := runProjection(m)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, bundle, cache.DefaultExpiration)
	return bundle, nil
}

func (s *cachedProjectionService) InvalidateCache() {
	s.cache.Flush()
}

func runProjection(m models.ProjectModel) (*models.ProjectionBundle, error) {
	bundle, verr := engine.Project(m)
	if verr != nil {
		return nil, verr
	}
	logger.L.Debug("Projection computed",
		"projectID", m.ID,
		"npv", humanize.CommafWithDigits(bundle.Indicators.NPV, 2),
		"irrConverged", bundle.Indicators.IRRConverged,
	)
	for _, d := range bundle.Diagnostics {
		logger.L.Warn("Projection diagnostic", "projectID", m.ID, "code", d.Code, "message", d.Message)
	}
	return bundle, nil
}

func modelCacheKey(m models.ProjectModel) (string, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
