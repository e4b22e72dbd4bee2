package handlers

import (
	"encoding/json"
	"net/http"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
)

type TeamHandler struct {
	service *services.TeamService
	users   *services.UserService
}

func NewTeamHandler(service *services.TeamService, users *services.UserService) *TeamHandler {
	return &TeamHandler{service: service, users: users}
}

// AddMember handles POST /api/team/add. The employeeId is generated
// server-side and cannot be supplied by the caller; the initial password is
// generated and mailed to the member.
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string  `json:"name"`
		Project string  `json:"project"`
		Email   string  `json:"email"`
		Phone   string  `json:"phone"`
		Role    string  `json:"role"`
		Shift   string  `json:"shift"`
		Charges float64 `json:"charges"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"name": req.Name, "project": req.Project, "email": req.Email, "role": req.Role,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	projectID, err := objectIDParam(req.Project, "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	member, err := h.users.ProvisionMember(r.Context(), models.TeamMember{
		Name:    req.Name,
		Project: projectID,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
		Shift:   req.Shift,
		Charges: req.Charges,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, member, "Team member added successfully")
}

// GetAllMembers handles GET /api/team/all.
func (h *TeamHandler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetAllMembers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, members, "")
}

// GetMember handles GET /api/team/{id}.
func (h *TeamHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "member ID")
	if err != nil {
		respondError(w, err)
		return
	}

	member, err := h.service.GetMemberByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, member, "")
}

// UpdateMember handles PUT /api/team/update/{id}.
func (h *TeamHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "member ID")
	if err != nil {
		respondError(w, err)
		return
	}

	patch, err := decodePatch(r.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	// Password changes go through the auth routes only.
	delete(patch, "password")

	member, err := h.service.UpdateMember(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, member, "Member updated")
}

// DeleteMember handles DELETE /api/team/delete/{id}.
func (h *TeamHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"], "member ID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteMember(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, nil, "Member deleted successfully")
}
