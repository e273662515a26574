// backend/src/handlers/scenario_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-capital/appraisal/backend/src/database"
	"github.com/meridian-capital/appraisal/backend/src/logger"
	"github.com/meridian-capital/appraisal/backend/src/models"
	"github.com/meridian-capital/appraisal/backend/src/services"
)

// ScenarioHandler stores, per project, a fixed set of named adjustment
// bundles ("optimistic"/"base"/"pessimistic" by default) and evaluates
// all of them in one call against the project's baseline.
type ScenarioHandler struct {
	scenarios services.ScenarioService
}

func NewScenarioHandler(scenarios services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

// HandleListScenarios returns the named scenario set stored for a
// project, seeding the fixed defaults on first access.
func (h *ScenarioHandler) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := database.GetProject(database.DB, userID, projectID); err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			sendJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to load project for scenario listing", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	scenarios, err := database.ListScenarios(database.DB, userID, projectID)
	if err != nil {
		logger.L.Error("Failed to list scenarios", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to list scenarios", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}

// HandleSaveScenarios replaces the named scenario set stored for a
// project with the caller-supplied one.
func (h *ScenarioHandler) HandleSaveScenarios(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := database.GetProject(database.DB, userID, projectID); err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			sendJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to load project for scenario save", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	var scenarios []models.NamedScenario
	if err := json.NewDecoder(r.Body).Decode(&scenarios); err != nil {
		sendJSONError(w, "invalid scenario list JSON", http.StatusBadRequest)
		return
	}

	if err := database.SaveScenarios(database.DB, userID, projectID, scenarios); err != nil {
		logger.L.Error("Failed to save scenarios", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to save scenarios", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRunScenarios evaluates a project's stored named scenario set
// (seeding the fixed defaults on first access) against its baseline
// model in one call.
func (h *ScenarioHandler) HandleRunScenarios(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	projectID := chi.URLParam(r, "id")
	saved, err := database.GetProject(database.DB, userID, projectID)
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			sendJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to load project for scenario run", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	scenarios, err := database.ListScenarios(database.DB, userID, projectID)
	if err != nil {
		logger.L.Error("Failed to load scenarios for run", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load scenarios", http.StatusInternalServerError)
		return
	}

	results, err := h.scenarios.RunScenarios(saved.Snapshot, scenarios)
	if err != nil {
		logger.L.Warn("Scenario run failed", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
