package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"feedback-be/internal/domain"
	"feedback-be/internal/service"
	apperrors "feedback-be/pkg/errors"
)

// TemplateHandler exposes admin certificate template endpoints.
type TemplateHandler struct {
	templates *service.TemplateService
}

func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// Create handles POST /api/admin/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.Name == "" {
		respondAppError(w, apperrors.NewValidationError("Template name is required", nil))
		return
	}
	if parsed, err := url.Parse(req.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		respondAppError(w, apperrors.NewValidationError("A valid template URL is required", nil))
		return
	}

	template, err := h.templates.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, template)
}

// List handles GET /api/admin/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
		"count":     len(templates),
	})
}

// Activate handles POST /api/admin/templates/{id}/activate
func (h *TemplateHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Activate(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

// Delete handles DELETE /api/admin/templates/{id}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
