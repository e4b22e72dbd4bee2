package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"timesheet-project/backend/utils"
)

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	t.Parallel()
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/all", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Success || body.Error != "UNAUTHORIZED" {
		t.Errorf("body = %+v", body)
	}
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	t.Parallel()
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects/all", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMiddlewarePassesClaims(t *testing.T) {
	t.Parallel()
	token, err := utils.GenerateToken("marko@example.com", "Manager", "User")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotEmail, gotModel string
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("claims missing from context")
		}
		gotEmail = claims.Email
		gotModel = claims.UserModel
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/team/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotEmail != "marko@example.com" || gotModel != "User" {
		t.Errorf("claims = (%q, %q)", gotEmail, gotModel)
	}
}
