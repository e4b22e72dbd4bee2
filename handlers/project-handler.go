package handlers

import (
	"net/http"
	"time"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

var projectDateFields = []string{"startDate", "endDate", "deadline"}

// checkProgress rejects a progress value outside 0-100.
func checkProgress(patch map[string]interface{}) error {
	if raw, ok := patch["progress"].(float64); ok && (raw < 0 || raw > 100) {
		return services.Validationf("progress must be between 0 and 100")
	}
	return nil
}

// CreateProject handles POST /api/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	body, err := decodePatch(r.Body, projectDateFields...)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := checkProgress(body); err != nil {
		respondError(w, err)
		return
	}

	name, _ := body["name"].(string)
	client, _ := body["client"].(string)
	description, _ := body["description"].(string)
	if missing := missingFields(map[string]string{
		"name": name, "client": client, "description": description,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	project := models.Project{
		Name:        name,
		Client:      client,
		Description: description,
	}
	if status, ok := body["status"].(string); ok {
		project.Status = status
	}
	if priority, ok := body["priority"].(string); ok {
		project.Priority = priority
	}
	if progress, ok := body["progress"].(float64); ok {
		project.Progress = int(progress)
	}
	if budget, ok := body["budget"].(float64); ok {
		project.Budget = budget
	}
	if t, ok := body["startDate"].(time.Time); ok {
		project.StartDate = &t
	}
	if t, ok := body["endDate"].(time.Time); ok {
		project.EndDate = &t
	}
	if t, ok := body["deadline"].(time.Time); ok {
		project.Deadline = &t
	}

	created, err := h.service.CreateProject(r.Context(), project)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, created, "Project created successfully")
}

// GetAllProjects handles GET /api/projects/all.
func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAllProjects(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, projects, "")
}

// GetProject handles GET /api/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, project, "")
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	patch, err := decodePatch(r.Body, projectDateFields...)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := checkProgress(patch); err != nil {
		respondError(w, err)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, project, "Project updated successfully")
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, nil, "Project deleted successfully")
}
