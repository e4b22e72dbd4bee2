package handlers

import (
	"encoding/json"
	"net/http"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"
)

type AuthHandler struct {
	service *services.UserService
}

func NewAuthHandler(service *services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupUser handles POST /api/auth/user/signup for Admin/Manager accounts.
func (h *AuthHandler) SignupUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName        string `json:"fullName"`
		Phone           string `json:"phone"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		Role            string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"fullName": req.FullName, "phone": req.Phone, "email": req.Email,
		"password": req.Password, "confirmPassword": req.ConfirmPassword,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}
	if len(req.Password) < 6 {
		respondError(w, services.Validationf("password must be at least 6 characters"))
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, services.Validationf("passwords do not match"))
		return
	}

	user, token, err := h.service.SignupUser(r.Context(), models.User{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
	}, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	}, "User created successfully")
}

// SignupMember handles POST /api/auth/member/signup for employee accounts.
func (h *AuthHandler) SignupMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		Project         string `json:"project"`
		Role            string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"name": req.Name, "phone": req.Phone, "email": req.Email,
		"password": req.Password, "confirmPassword": req.ConfirmPassword, "project": req.Project,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, services.Validationf("passwords do not match"))
		return
	}

	projectID, err := objectIDParam(req.Project, "project ID")
	if err != nil {
		respondError(w, err)
		return
	}

	member, token, err := h.service.SignupMember(r.Context(), models.TeamMember{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Project: projectID,
		Role:    req.Role,
	}, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, map[string]interface{}{
		"user":  member,
		"token": token,
	}, "Signup successful")
}

// Login handles POST /api/auth/login for both principal variants.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"email": req.Email, "password": req.Password,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}

	principal, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"userModel": principal.Model,
		"role":      principal.Role(),
		"variant":   principal.Variant(),
		"user":      principal,
	}, "Login successful")
}

// ForgotPassword handles POST /api/auth/forgot-password. The response does
// not reveal whether the address exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}
	if req.Email == "" {
		respondError(w, services.NewValidationError("email"))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil, "If that email exists, a reset link was sent.")
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, services.Validationf("invalid request payload"))
		return
	}

	if missing := missingFields(map[string]string{
		"password": req.Password, "confirmPassword": req.ConfirmPassword,
	}); len(missing) > 0 {
		respondError(w, services.NewValidationError(missing...))
		return
	}
	if req.Token == "" {
		respondError(w, services.NewValidationError("token"))
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil, "Password reset successfully")
}
