// backend/src/handlers/import_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/meridian-capital/appraisal/backend/src/config"
	"github.com/meridian-capital/appraisal/backend/src/database"
	"github.com/meridian-capital/appraisal/backend/src/engine"
	"github.com/meridian-capital/appraisal/backend/src/logger"
	"github.com/meridian-capital/appraisal/backend/src/models"
	"github.com/meridian-capital/appraisal/backend/src/validation"
)

// ImportHandler accepts a project model as a multipart file upload,
// validates it the same way an interactively-built project is
// validated, and persists it under the requesting user.
type ImportHandler struct{}

func NewImportHandler() *ImportHandler {
	return &ImportHandler{}
}

func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "userID", userID, "error", err)
		sendJSONError(w, fmt.Sprintf("failed to process request or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from import request", "userID", userID, "error", err)
		sendJSONError(w, "failed to retrieve file from request, ensure the 'file' field is used", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		sendJSONError(w, fmt.Sprintf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		logger.L.Warn("Invalid client-declared file type for import", "userID", userID, "error", err)
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		logger.L.Warn("Server-side file content validation failed for import", "userID", userID, "error", err)
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var project models.ProjectModel
	if err := json.NewDecoder(file).Decode(&project); err != nil {
		logger.L.Warn("Failed to decode imported project JSON", "userID", userID, "error", err)
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

	if verr := engine.ValidateModel(project); verr != nil && verr.HasProblems() {
		logger.L.Warn("Imported project failed validation", "userID", userID, "problems", verr.Problems())
		sendJSONError(w, formatValidationProblems(verr.Problems()), http.StatusUnprocessableEntity)
		return
	}

	saved, err := database.SaveProject(database.DB, userID, project)
	if err != nil {
		logger.L.Error("Failed to persist imported project", "userID", userID, "error", err)
		sendJSONError(w, "failed to save imported project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

func formatValidationProblems(problems []error) string {
	if len(problems) == 0 {
		return "invalid project model"
	}
	msg := problems[0].Error()
	for _, p := range problems[1:] {
		msg += "; " + p.Error()
	}
	return msg
}
