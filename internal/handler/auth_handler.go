package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"feedback-be/internal/domain"
	"feedback-be/internal/service"
	apperrors "feedback-be/pkg/errors"
	"feedback-be/pkg/utils"
)

const minPasswordLength = 8

// AuthHandler exposes admin registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/admin/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validateRegisterRequest(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError(err.Error(), nil))
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/admin/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondAppError(w, apperrors.NewValidationError("Email and password are required", nil))
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func validateRegisterRequest(req *domain.RegisterRequest) error {
	if !utils.ValidateEmail(req.Email) {
		return fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
