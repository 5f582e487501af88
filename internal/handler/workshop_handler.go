package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"feedback-be/internal/domain"
	"feedback-be/internal/middleware"
	"feedback-be/internal/service"
	apperrors "feedback-be/pkg/errors"
)

// WorkshopHandler exposes the admin workshop endpoints.
type WorkshopHandler struct {
	workshops *service.WorkshopService
}

func NewWorkshopHandler(workshops *service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshops: workshops}
}

// Create handles POST /api/admin/workshops
func (h *WorkshopHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	if err := validateWorkshopDate(req.Date, time.Now()); err != nil {
		respondAppError(w, apperrors.NewValidationError(err.Error(), nil))
		return
	}

	workshop, err := h.workshops.Create(r.Context(), adminID, req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, workshop)
}

// List handles GET /api/admin/workshops
func (h *WorkshopHandler) List(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	workshops, err := h.workshops.List(r.Context(), adminID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workshops)
}

// Get handles GET /api/admin/workshops/{id}
func (h *WorkshopHandler) Get(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	workshop, err := h.workshops.Get(r.Context(), adminID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workshop)
}

// Update handles PUT /api/admin/workshops/{id}
func (h *WorkshopHandler) Update(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	workshop, err := h.workshops.Update(r.Context(), adminID, chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workshop)
}

// Delete handles DELETE /api/admin/workshops/{id}
func (h *WorkshopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	if err := h.workshops.Delete(r.Context(), adminID, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Activate handles POST /api/admin/workshops/{id}/activate
func (h *WorkshopHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles POST /api/admin/workshops/{id}/deactivate
func (h *WorkshopHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// ListSubmissions handles GET /api/admin/workshops/{id}/submissions
func (h *WorkshopHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	submissions, err := h.workshops.ListSubmissions(r.Context(), adminID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": submissions,
		"count":       len(submissions),
	})
}

func (h *WorkshopHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	adminID, ok := h.adminID(w, r)
	if !ok {
		return
	}

	workshop, err := h.workshops.SetActive(r.Context(), adminID, chi.URLParam(r, "id"), active)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workshop)
}

func (h *WorkshopHandler) adminID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.AdminFromContext(r.Context())
	if claims == nil {
		respondAppError(w, apperrors.NewAuthenticationError("Authentication required"))
		return "", false
	}
	return claims.AdminID, true
}

func (h *WorkshopHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*domain.WorkshopRequest, bool) {
	var req domain.WorkshopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return nil, false
	}
	if err := validateWorkshopRequest(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError(err.Error(), nil))
		return nil, false
	}
	return &req, true
}

func validateWorkshopRequest(req *domain.WorkshopRequest) error {
	if req.WorkshopName == "" {
		return fmt.Errorf("workshop name is required")
	}
	if len(req.WorkshopName) > 100 {
		return fmt.Errorf("workshop name must be 100 characters or fewer")
	}
	if req.CollegeName == "" {
		return fmt.Errorf("college name is required")
	}
	if req.Instructions == "" {
		return fmt.Errorf("instructions are required")
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}

	if _, err := time.Parse("15:04", req.Time); err != nil {
		return fmt.Errorf("time must be in HH:MM format")
	}

	return nil
}

// validateWorkshopDate rejects calendar dates before today. It only applies
// when creating a workshop; editing an existing workshop that has already
// happened stays allowed. The comparison is on the local calendar date, so a
// workshop scheduled for today is accepted at any hour.
func validateWorkshopDate(date string, now time.Time) error {
	if date < now.Format("2006-01-02") {
		return fmt.Errorf("workshop date cannot be in the past")
	}
	return nil
}
