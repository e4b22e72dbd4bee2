package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TimeEntryHandler struct {
	service *services.TimeEntryService
}

func NewTimeEntryHandler(service *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{service: service}
}

type timeEntryRequest struct {
	UserID       string  `json:"userId"`
	UserModel    string  `json:"userModel"`
	Project      string  `json:"project"`
	Task         string  `json:"task"`
	Description  string  `json:"description"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	TrackingType string  `json:"trackingType"`
	Billable     *bool   `json:"billable"`
	HourlyRate   float64 `json:"hourlyRate"`
}

// userModelOrDefault validates the discriminator, defaulting to User.
func userModelOrDefault(raw string) (models.UserModel, error) {
	if raw == "" {
		return models.UserModelUser, nil
	}
	m := models.UserModel(raw)
	if !m.Valid() {
		return "", services.Validationf("userModel must be User or TeamMember")
	}
	return m, nil
}

func (h *TimeEntryHandler) parseRefs(req timeEntryRequest) (user, project, task primitive.ObjectID, err error) {
	if user, err = objectIDParam(req.UserID, "userId"); err != nil {
		return
	}
	if project, err = objectIDParam(req.Project, "project"); err != nil {
		return
	}
	task, err = objectIDParam(req.Task, "task")
	return
}

// StartTimer handles POST /api/time-entries/start.
func (h *TimeEntryHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	var req timeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"userId": req.UserID, "project": req.Project, "task": req.Task, "description": req.Description,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	userModel, err := userModelOrDefault(req.UserModel)
	if err != nil {
		respondError(w, err)
		return
	}
	userID, projectID, taskID, err := h.parseRefs(req)
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.StartTimer(r.Context(), services.StartTimerRequest{
		UserID:       userID,
		UserModel:    userModel,
		Project:      projectID,
		Task:         taskID,
		Description:  req.Description,
		TrackingType: models.TrackingType(req.TrackingType),
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, entry, "Timer started successfully")
}

// StopTimer handles PUT /api/time-entries/stop/{id}.
func (h *TimeEntryHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	entryID, err := objectIDParam(mux.Vars(r)["id"], "time entry ID")
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.StopTimer(r.Context(), entryID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, entry, "Timer stopped successfully")
}

// ManualEntry handles POST /api/time-entries/manual.
func (h *TimeEntryHandler) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req timeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"userId": req.UserID, "project": req.Project, "task": req.Task,
		"description": req.Description, "startTime": req.StartTime, "endTime": req.EndTime,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	userModel, err := userModelOrDefault(req.UserModel)
	if err != nil {
		respondError(w, err)
		return
	}
	userID, projectID, taskID, err := h.parseRefs(req)
	if err != nil {
		respondError(w, err)
		return
	}
	start, err := services.ParseDateField(req.StartTime)
	if err != nil {
		respondError(w, services.Validationf("invalid date value for startTime"))
		return
	}
	end, err := services.ParseDateField(req.EndTime)
	if err != nil {
		respondError(w, services.Validationf("invalid date value for endTime"))
		return
	}

	entry, err := h.service.RecordManualEntry(r.Context(), services.ManualEntryRequest{
		UserID:      userID,
		UserModel:   userModel,
		Project:     projectID,
		Task:        taskID,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		Billable:    req.Billable,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, entry, "Time entry created successfully")
}

// CreateEntry handles POST /api/time-entries. With an endTime it records a
// completed entry, without one it behaves like a timer start.
func (h *TimeEntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var buf timeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&buf); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if buf.EndTime != "" {
		h.manualFromRequest(w, r, buf)
		return
	}
	h.startFromRequest(w, r, buf)
}

func (h *TimeEntryHandler) manualFromRequest(w http.ResponseWriter, r *http.Request, req timeEntryRequest) {
	if missing := missingFields(map[string]string{
		"userId": req.UserID, "project": req.Project, "task": req.Task,
		"description": req.Description, "startTime": req.StartTime,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	userModel, err := userModelOrDefault(req.UserModel)
	if err != nil {
		respondError(w, err)
		return
	}
	userID, projectID, taskID, err := h.parseRefs(req)
	if err != nil {
		respondError(w, err)
		return
	}
	start, err := services.ParseDateField(req.StartTime)
	if err != nil {
		respondError(w, services.Validationf("invalid date value for startTime"))
		return
	}
	end, err := services.ParseDateField(req.EndTime)
	if err != nil {
		respondError(w, services.Validationf("invalid date value for endTime"))
		return
	}

	entry, err := h.service.RecordManualEntry(r.Context(), services.ManualEntryRequest{
		UserID:      userID,
		UserModel:   userModel,
		Project:     projectID,
		Task:        taskID,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		Billable:    req.Billable,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, entry, "Time entry created successfully")
}

func (h *TimeEntryHandler) startFromRequest(w http.ResponseWriter, r *http.Request, req timeEntryRequest) {
	if missing := missingFields(map[string]string{
		"userId": req.UserID, "project": req.Project, "task": req.Task, "description": req.Description,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	userModel, err := userModelOrDefault(req.UserModel)
	if err != nil {
		respondError(w, err)
		return
	}
	userID, projectID, taskID, err := h.parseRefs(req)
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.StartTimer(r.Context(), services.StartTimerRequest{
		UserID:       userID,
		UserModel:    userModel,
		Project:      projectID,
		Task:         taskID,
		Description:  req.Description,
		TrackingType: models.TrackingType(req.TrackingType),
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, entry, "Time entry created successfully")
}

// UpdateEntry handles PUT /api/time-entries/{id}.
func (h *TimeEntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := objectIDParam(mux.Vars(r)["id"], "time entry ID")
	if err != nil {
		respondError(w, err)
		return
	}

	patch, err := decodePatch(r.Body, "startTime", "endTime")
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), entryID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, entry, "Time entry updated successfully")
}

// DeleteEntry handles DELETE /api/time-entries/{id}.
func (h *TimeEntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := objectIDParam(mux.Vars(r)["id"], "time entry ID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteEntry(r.Context(), entryID); err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil, "Time entry deleted successfully")
}

// ListEntries handles GET /api/time-entries.
func (h *TimeEntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.EntryFilter{Status: models.TimeEntryStatus(query.Get("status"))}

	if raw := query.Get("userId"); raw != "" {
		id, err := objectIDParam(raw, "userId")
		if err != nil {
			respondError(w, err)
			return
		}
		filter.UserID = &id
	}
	if raw := query.Get("project"); raw != "" {
		id, err := objectIDParam(raw, "project")
		if err != nil {
			respondError(w, err)
			return
		}
		filter.Project = &id
	}
	if raw := query.Get("startDate"); raw != "" {
		t, err := services.ParseDateField(raw)
		if err != nil {
			respondError(w, services.Validationf("invalid date value for startDate"))
			return
		}
		filter.StartDate = &t
	}
	if raw := query.Get("endDate"); raw != "" {
		t, err := services.ParseDateField(raw)
		if err != nil {
			respondError(w, services.Validationf("invalid date value for endDate"))
			return
		}
		filter.EndDate = &t
	}

	entries, err := h.service.ListEntries(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, entries, "")
}

// GetActiveEntry handles GET /api/time-entries/active/{userId}.
func (h *TimeEntryHandler) GetActiveEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := objectIDParam(mux.Vars(r)["userId"], "user ID")
	if err != nil {
		respondError(w, err)
		return
	}

	userModel := models.UserModel(r.URL.Query().Get("userModel"))
	if userModel != "" && !userModel.Valid() {
		respondError(w, services.Validationf("userModel must be User or TeamMember"))
		return
	}

	entry, err := h.service.GetActiveEntry(r.Context(), userID, userModel)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, entry, "")
}

// summaryRange parses startDate/endDate query values, defaulting to the
// trailing seven days.
func summaryRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := services.ParseDateField(raw)
		if err != nil {
			return start, end, services.Validationf("invalid date value for startDate")
		}
		start = t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := services.ParseDateField(raw)
		if err != nil {
			return start, end, services.Validationf("invalid date value for endDate")
		}
		end = t
	}
	return start, end, nil
}

// GetTotalHours handles GET /api/time-entries/user/{userId}/total-hours.
func (h *TimeEntryHandler) GetTotalHours(w http.ResponseWriter, r *http.Request) {
	userID, err := objectIDParam(mux.Vars(r)["userId"], "user ID")
	if err != nil {
		respondError(w, err)
		return
	}
	start, end, err := summaryRange(r)
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.service.GetUserTotalHours(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"totalHours":    services.RoundHours(summary.TotalMinutes),
		"billableHours": services.RoundHours(summary.BillableMinutes),
		"totalEntries":  summary.TotalEntries,
		"period":        map[string]time.Time{"start": start, "end": end},
	}, "")
}

// GetSummary handles GET /api/time-entries/summary/{userId}.
func (h *TimeEntryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := objectIDParam(mux.Vars(r)["userId"], "user ID")
	if err != nil {
		respondError(w, err)
		return
	}
	start, end, err := summaryRange(r)
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.service.GetUserTotalHours(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	recent, err := h.service.RecentEntries(r.Context(), userID, start, end, 10)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"summary": map[string]interface{}{
			"totalHours":    services.RoundHours(summary.TotalMinutes),
			"billableHours": services.RoundHours(summary.BillableMinutes),
			"totalEntries":  summary.TotalEntries,
			"period":        map[string]time.Time{"start": start, "end": end},
		},
		"recentEntries": recent,
	}, "")
}
