package handlers

import (
	"encoding/json"
	"net/http"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
)

type ShiftHandler struct {
	service *services.ShiftService
}

func NewShiftHandler(service *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// GetEmployeeShift handles GET /api/shifts/employee/{employeeId}. When no
// shift is assigned, the member's default configuration is returned with
// isDefault=true.
func (h *ShiftHandler) GetEmployeeShift(w http.ResponseWriter, r *http.Request) {
	employeeID, err := objectIDParam(mux.Vars(r)["employeeId"], "employee ID")
	if err != nil {
		respondError(w, err)
		return
	}

	shift, isDefault, err := h.service.GetEmployeeShift(r.Context(), employeeID)
	if err != nil {
		respondError(w, err)
		return
	}

	if isDefault {
		respondData(w, http.StatusOK, map[string]interface{}{
			"shiftType":   shift.ShiftType,
			"isDefault":   true,
			"employeeId":  shift.EmployeeID,
			"startTime":   shift.StartTime,
			"endTime":     shift.EndTime,
			"workingDays": shift.WorkingDays,
		}, "")
		return
	}
	respondData(w, http.StatusOK, shift, "")
}

// AssignShift handles POST /api/shifts/assign.
func (h *ShiftHandler) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID    string   `json:"employeeId"`
		ShiftType     string   `json:"shiftType"`
		StartTime     string   `json:"startTime"`
		EndTime       string   `json:"endTime"`
		WorkingDays   []string `json:"workingDays"`
		Description   string   `json:"description"`
		HoursPerDay   int      `json:"hoursPerDay"`
		DaysPerWeek   int      `json:"daysPerWeek"`
		WeeksPerMonth int      `json:"weeksPerMonth"`
		MonthlyHours  int      `json:"monthlyHours"`
		AssignedBy    string   `json:"assignedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"employeeId": req.EmployeeID, "shiftType": req.ShiftType, "assignedBy": req.AssignedBy,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	shiftType := models.TrackingType(req.ShiftType)
	if !models.ValidTrackingType(shiftType) {
		respondError(w, services.Validationf("shiftType must be one of Hourly, Daily, Weekly, Monthly"))
		return
	}

	employeeID, err := objectIDParam(req.EmployeeID, "employee ID")
	if err != nil {
		respondError(w, err)
		return
	}
	assignedBy, err := objectIDParam(req.AssignedBy, "assignedBy ID")
	if err != nil {
		respondError(w, err)
		return
	}

	shift, err := h.service.AssignShift(r.Context(), services.AssignShiftRequest{
		EmployeeID:    employeeID,
		ShiftType:     shiftType,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		WorkingDays:   req.WorkingDays,
		Description:   req.Description,
		HoursPerDay:   req.HoursPerDay,
		DaysPerWeek:   req.DaysPerWeek,
		WeeksPerMonth: req.WeeksPerMonth,
		MonthlyHours:  req.MonthlyHours,
		AssignedBy:    assignedBy,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, shift, "Shift assigned successfully")
}

// GetAllShifts handles GET /api/shifts/all.
func (h *ShiftHandler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.service.GetAllShifts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, shifts, "")
}

// UpdateShift handles PUT /api/shifts/{shiftId}.
func (h *ShiftHandler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := objectIDParam(mux.Vars(r)["shiftId"], "shift ID")
	if err != nil {
		respondError(w, err)
		return
	}

	patch, err := decodePatch(r.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	if raw, ok := patch["shiftType"].(string); ok && !models.ValidTrackingType(models.TrackingType(raw)) {
		respondError(w, services.Validationf("shiftType must be one of Hourly, Daily, Weekly, Monthly"))
		return
	}

	shift, err := h.service.UpdateShift(r.Context(), shiftID, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, shift, "Shift updated successfully")
}

// DeleteShift handles DELETE /api/shifts/{shiftId} by deactivating.
func (h *ShiftHandler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := objectIDParam(mux.Vars(r)["shiftId"], "shift ID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeactivateShift(r.Context(), shiftID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, nil, "Shift deactivated successfully")
}

// GetShiftHistory handles GET /api/shifts/history/{employeeId}.
func (h *ShiftHandler) GetShiftHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, err := objectIDParam(mux.Vars(r)["employeeId"], "employee ID")
	if err != nil {
		respondError(w, err)
		return
	}

	shifts, err := h.service.GetShiftHistory(r.Context(), employeeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, shifts, "")
}
