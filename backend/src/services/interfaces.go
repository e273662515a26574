// backend/src/services/interfaces.go
package services

import (
	"time"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

// ProjectionService wraps the engine's façade (C8) with memoization, so
// repeated evaluations of the same model don't recompute the full
// statement/indicator chain.
type ProjectionService interface {
	Project(model models.ProjectModel) (*models.ProjectionBundle, error)
	InvalidateCache()
}

// SensitivityService fans a variable sweep out across a worker pool and
// assembles the tornado-ordered summary.
type SensitivityService interface {
	RunSensitivity(base models.ProjectModel, variables []string, variations []float64) (*models.SensitivityReport, error)
}

// ScenarioService evaluates a set of named adjustment bundles against a
// base model.
type ScenarioService interface {
	RunScenarios(base models.ProjectModel, scenarios []models.NamedScenario) ([]models.ScenarioResult, error)
}

// EmailService sends the transactional emails the auth flow depends on
// (verification, password reset). Concrete implementations live behind
// this interface so handlers never depend on an SMTP client directly.
type EmailService interface {
	SendVerificationEmail(toEmail, username, token string) error
	SendPasswordResetEmail(toEmail, username, token string) error
}

// CacheCleanupInterval is the cleanup interval of the go-cache instance
// ProjectionService memoizes results in; its expiry comes from
// config.Cfg.ProjectionCacheExpiry. DefaultCacheExpiration equals that
// setting's default and is not read by main.go.
const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)
