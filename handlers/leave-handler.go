package handlers

import (
	"encoding/json"
	"net/http"

	"timesheet-project/backend/middleware"
	"timesheet-project/backend/models"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
)

type LeaveHandler struct {
	service *services.LeaveService
}

func NewLeaveHandler(service *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// SubmitLeave handles POST /api/leave.
func (h *LeaveHandler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var leave models.LeaveApplication
	if err := json.NewDecoder(r.Body).Decode(&leave); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"employeeName": leave.EmployeeName, "supervisorName": leave.SupervisorName,
		"department": leave.Department, "leaveDate": leave.LeaveDate,
		"leaveTime": leave.LeaveTime, "leaveType": leave.LeaveType, "duration": leave.Duration,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	created, err := h.service.SubmitLeave(r.Context(), leave)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, created, "Leave request submitted successfully")
}

// ListLeaves handles GET /api/leave with status/department/employeeName
// filters.
func (h *LeaveHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	leaves, err := h.service.ListLeaves(r.Context(), services.LeaveFilter{
		Status:       models.LeaveStatus(query.Get("status")),
		Department:   query.Get("department"),
		EmployeeName: query.Get("employeeName"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, leaves, len(leaves))
}

// GetLeave handles GET /api/leave/{id}.
func (h *LeaveHandler) GetLeave(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "leave application ID")
	if err != nil {
		respondError(w, err)
		return
	}

	leave, err := h.service.GetLeaveByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, leave, "")
}

// ReviewLeave handles PUT /api/leave/{id}/status. Only admins and managers
// may review.
func (h *LeaveHandler) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if principalFromClaims(claims).Variant() != models.VariantAdminOrManager {
			respondError(w, services.Unauthorizedf("only managers may review leave applications"))
			return
		}
	}

	id, err := objectIDParam(mux.Vars(r)["id"], "leave application ID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Status     string `json:"status"`
		Comments   string `json:"comments"`
		ReviewedBy string `json:"reviewedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	leave, err := h.service.ReviewLeave(r.Context(), id, models.LeaveStatus(req.Status), req.ReviewedBy, req.Comments)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, leave, "Leave application "+req.Status+" successfully")
}

// DeleteLeave handles DELETE /api/leave/{id}.
func (h *LeaveHandler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "leave application ID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteLeave(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, nil, "Leave application deleted successfully")
}
