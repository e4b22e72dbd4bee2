package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestCreateProjectRejectsOutOfRangeProgress(t *testing.T) {
	t.Parallel()
	h := NewProjectHandler(nil)

	body := strings.NewReader(`{"name":"Website Redesign","client":"Acme","description":"Q3 relaunch","progress":150}`)
	rec := httptest.NewRecorder()
	h.CreateProject(rec, httptest.NewRequest(http.MethodPost, "/api/projects", body))

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

func TestUpdateProjectRejectsNegativeProgress(t *testing.T) {
	t.Parallel()
	h := NewProjectHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/projects/507f1f77bcf86cd799439011", strings.NewReader(`{"progress":-5}`))
	req = mux.SetURLVars(req, map[string]string{"id": "507f1f77bcf86cd799439011"})
	rec := httptest.NewRecorder()
	h.UpdateProject(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckProgressAcceptsBounds(t *testing.T) {
	t.Parallel()
	for _, v := range []float64{0, 50, 100} {
		if err := checkProgress(map[string]interface{}{"progress": v}); err != nil {
			t.Errorf("progress %v rejected: %v", v, err)
		}
	}
	if err := checkProgress(map[string]interface{}{}); err != nil {
		t.Errorf("absent progress rejected: %v", err)
	}
}
