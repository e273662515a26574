// backend/src/handlers/sensitivity_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-capital/appraisal/backend/src/database"
	"github.com/meridian-capital/appraisal/backend/src/logger"
	"github.com/meridian-capital/appraisal/backend/src/services"
)

// SensitivityHandler runs the sensitivity driver (C7) against a saved
// project's baseline model.
type SensitivityHandler struct {
	sensitivity services.SensitivityService
}

func NewSensitivityHandler(sensitivity services.SensitivityService) *SensitivityHandler {
	return &SensitivityHandler{sensitivity: sensitivity}
}

type sensitivityRequest struct {
	Variables  []string  `json:"variables"`
	Variations []float64 `json:"variations"`
}

func (h *SensitivityHandler) HandleRunSensitivity(w http.ResponseWriter, r *http.Request) {
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
		logger.L.Error("Failed to load project for sensitivity run", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	var req sensitivityRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	report, err := h.sensitivity.RunSensitivity(saved.Snapshot, req.Variables, req.Variations)
	if err != nil {
		logger.L.Warn("Sensitivity run failed", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
