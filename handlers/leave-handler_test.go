package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timesheet-project/backend/middleware"
	"timesheet-project/backend/models"
	"timesheet-project/backend/utils"

	"github.com/gorilla/mux"
)

func reviewRequest(t *testing.T, id string, claims *utils.Claims) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/leave/"+id+"/status", strings.NewReader(`{"status":"approved","reviewedBy":"HR"}`))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

func TestReviewLeaveRejectsEmployeeAuthority(t *testing.T) {
	t.Parallel()
	h := NewLeaveHandler(nil)

	rec := httptest.NewRecorder()
	h.ReviewLeave(rec, reviewRequest(t, "507f1f77bcf86cd799439011", &utils.Claims{
		Email:     "ana@example.com",
		Role:      models.RoleEmployee,
		UserModel: string(models.UserModelTeamMember),
	}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error != "UNAUTHORIZED" {
		t.Errorf("error = %q, want UNAUTHORIZED", resp.Error)
	}
}

func TestReviewLeavePassesManagerAuthority(t *testing.T) {
	t.Parallel()
	h := NewLeaveHandler(nil)

	// A malformed ID after the authority check yields VALIDATION, proving the
	// manager got past the authorization gate.
	rec := httptest.NewRecorder()
	h.ReviewLeave(rec, reviewRequest(t, "not-an-id", &utils.Claims{
		Email:     "marko@example.com",
		Role:      models.RoleManager,
		UserModel: string(models.UserModelTeamMember),
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error != "VALIDATION" {
		t.Errorf("error = %q, want VALIDATION", resp.Error)
	}
}
