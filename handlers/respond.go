package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"timesheet-project/backend/logging"
	"timesheet-project/backend/services"
)

// envelope is the uniform JSON response shape.
type envelope struct {
	Success       bool        `json:"success"`
	Data          interface{} `json:"data,omitempty"`
	Error         string      `json:"error,omitempty"`
	Message       string      `json:"message,omitempty"`
	MissingFields []string    `json:"missingFields,omitempty"`
	Count         *int        `json:"count,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondData writes a success envelope.
func respondData(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

// respondList writes a success envelope with a count, used by list routes.
func respondList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// statusForCode maps the error taxonomy to HTTP statuses. Conflict and
// InvalidState deliberately map to 400, distinct from 404 NotFound.
func statusForCode(code services.ErrorCode) int {
	switch code {
	case services.CodeValidation, services.CodeConflict, services.CodeInvalidState:
		return http.StatusBadRequest
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps any error onto the envelope. Unclassified errors become
// INTERNAL; their cause is logged, never sent to the caller.
func respondError(w http.ResponseWriter, err error) {
	se := services.AsError(err)
	if se.Code == services.CodeInternal {
		cause := errors.Unwrap(se)
		if cause == nil {
			cause = err
		}
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: Internal error: %v", cause)
	}
	writeJSON(w, statusForCode(se.Code), envelope{
		Success:       false,
		Error:         string(se.Code),
		Message:       se.Message,
		MissingFields: se.MissingFields,
	})
}
