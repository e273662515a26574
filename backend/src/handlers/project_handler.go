// backend/src/handlers/project_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meridian-capital/appraisal/backend/src/database"
	"github.com/meridian-capital/appraisal/backend/src/logger"
	"github.com/meridian-capital/appraisal/backend/src/models"
	"github.com/meridian-capital/appraisal/backend/src/services"
	"github.com/meridian-capital/appraisal/backend/src/validation"
)

// ProjectHandler persists ProjectModel snapshots and runs them through
// the projection façade (C8).
type ProjectHandler struct {
	projection services.ProjectionService
}

func NewProjectHandler(projection services.ProjectionService) *ProjectHandler {
	return &ProjectHandler{projection: projection}
}

func (h *ProjectHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var project models.ProjectModel
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		sendJSONError(w, "invalid project JSON", http.StatusBadRequest)
		return
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	project.Name = validation.SanitizeText(project.Name)
	if err := validation.CheckXSSPatterns(project.Name, "name", project.ID); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateProjectFields(project); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := database.SaveProject(database.DB, userID, project)
	if err != nil {
		logger.L.Error("Failed to save project", "userID", userID, "error", err)
		sendJSONError(w, "failed to save project", http.StatusInternalServerError)
		return
	}
	h.projection.InvalidateCache()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

func (h *ProjectHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	projects, err := database.ListProjects(database.DB, userID)
	if err != nil {
		logger.L.Error("Failed to list projects", "userID", userID, "error", err)
		sendJSONError(w, "failed to list projects", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *ProjectHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	projectID := chi.URLParam(r, "id")
	project, err := database.GetProject(database.DB, userID, projectID)
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			sendJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to load project", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

func (h *ProjectHandler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	projectID := chi.URLParam(r, "id")
	if err := database.DeleteProject(database.DB, userID, projectID); err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			sendJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete project", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to delete project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRunProjection runs a saved project through the projection
// façade and returns the full statement/indicator bundle.
func (h *ProjectHandler) HandleRunProjection(w http.ResponseWriter, r *http.Request) {
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
		logger.L.Error("Failed to load project for projection", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	bundle, err := h.projection.Project(saved.Snapshot)
	if err != nil {
		logger.L.Warn("Projection failed", "userID", userID, "projectID", projectID, "error", err)
		sendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bundle)
}
