package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"timesheet-project/backend/services"
)

func TestStatusForCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code services.ErrorCode
		want int
	}{
		{services.CodeValidation, http.StatusBadRequest},
		{services.CodeConflict, http.StatusBadRequest},
		{services.CodeInvalidState, http.StatusBadRequest},
		{services.CodeNotFound, http.StatusNotFound},
		{services.CodeUnauthorized, http.StatusUnauthorized},
		{services.CodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRespondDataEnvelope(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusCreated, map[string]string{"name": "Website Redesign"}, "Project created successfully")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Message != "Project created successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Error != "" {
		t.Errorf("error = %q, want empty", body.Error)
	}
}

func TestRespondListIncludesCount(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	respondList(rec, []string{"a", "b", "c"}, 3)

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Count == nil || *body.Count != 3 {
		t.Errorf("count = %v, want 3", body.Count)
	}
}

func TestRespondErrorValidation(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	respondError(rec, services.NewValidationError("email", "password"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Error != "VALIDATION" {
		t.Errorf("error = %q, want VALIDATION", body.Error)
	}
	if len(body.MissingFields) != 2 {
		t.Errorf("missingFields = %v, want 2 entries", body.MissingFields)
	}
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("dial tcp 10.0.0.5:27017: i/o timeout"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Message != "internal server error" {
		t.Errorf("message = %q, must not leak the cause", body.Message)
	}
}
