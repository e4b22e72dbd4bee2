package handlers

import (
	"encoding/json"
	"net/http"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string   `json:"name"`
		Description    string   `json:"description"`
		Project        string   `json:"project"`
		AssignedTo     string   `json:"assignedTo"`
		Priority       string   `json:"priority"`
		EstimatedHours float64  `json:"estimatedHours"`
		DueDate        string   `json:"dueDate"`
		Tags           []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"name": req.Name, "project": req.Project,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	projectID, err := objectIDParam(req.Project, "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	task := models.Task{
		Name:           req.Name,
		Description:    req.Description,
		Project:        projectID,
		Priority:       models.TaskPriority(req.Priority),
		EstimatedHours: req.EstimatedHours,
		Tags:           req.Tags,
	}
	if req.AssignedTo != "" {
		assignedTo, err := objectIDParam(req.AssignedTo, "assignedTo user ID")
		if err != nil {
			respondError(w, err)
			return
		}
		task.AssignedTo = &assignedTo
	}
	if req.DueDate != "" {
		due, err := services.ParseDateField(req.DueDate)
		if err != nil {
			respondError(w, services.Validationf("invalid date value for dueDate"))
			return
		}
		task.DueDate = &due
	}

	created, err := h.service.CreateTask(r.Context(), task)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, created, "Task created successfully")
}

// ListTasks handles GET /api/tasks with project/assignedTo/status filters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.TaskFilter{Status: models.TaskStatus(query.Get("status"))}

	if raw := query.Get("project"); raw != "" {
		id, err := objectIDParam(raw, "project ID")
		if err != nil {
			respondError(w, err)
			return
		}
		filter.Project = &id
	}
	if raw := query.Get("assignedTo"); raw != "" {
		id, err := objectIDParam(raw, "assignedTo user ID")
		if err != nil {
			respondError(w, err)
			return
		}
		filter.AssignedTo = &id
	}

	tasks, err := h.service.ListTasks(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, tasks, "")
}

// GetTasksByProject handles GET /api/tasks/project/{projectId}.
func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := objectIDParam(mux.Vars(r)["projectId"], "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), services.TaskFilter{
		Project: &projectID,
		Status:  models.TaskStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, tasks, "")
}

// GetUserTasks handles GET /api/tasks/user/{userId}.
func (h *TaskHandler) GetUserTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := objectIDParam(mux.Vars(r)["userId"], "user ID")
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), services.TaskFilter{
		AssignedTo: &userID,
		Status:     models.TaskStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, tasks, "")
}

// GetTask handles GET /api/tasks/{id}. Soft-deleted tasks are still
// returned here.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "task ID")
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, task, "")
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "task ID")
	if err != nil {
		respondError(w, err)
		return
	}

	patch, err := decodePatch(r.Body, "dueDate")
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, task, "Task updated successfully")
}

// DeleteTask handles DELETE /api/tasks/{id} as a soft delete.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "task ID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.SoftDeleteTask(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, nil, "Task deleted successfully")
}
