package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback-be/internal/domain"
	"feedback-be/internal/service"
	apperrors "feedback-be/pkg/errors"
)

// FeedbackHandler exposes the public attendee endpoints: workshop resolution,
// session lifecycle, draft edits, stage navigation, and verification.
type FeedbackHandler struct {
	feedback     *service.FeedbackService
	verification *service.VerificationService
}

func NewFeedbackHandler(feedback *service.FeedbackService, verification *service.VerificationService) *FeedbackHandler {
	return &FeedbackHandler{
		feedback:     feedback,
		verification: verification,
	}
}

// ResolveWorkshop handles GET /api/feedback/{link}
func (h *FeedbackHandler) ResolveWorkshop(w http.ResponseWriter, r *http.Request) {
	link := chi.URLParam(r, "link")

	workshop, err := h.feedback.ResolveWorkshop(r.Context(), link)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workshop)
}

// StartSession handles POST /api/feedback/{link}/session
func (h *FeedbackHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	link := chi.URLParam(r, "link")

	session, err := h.feedback.StartSession(r.Context(), link)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /api/feedback/session/{sessionID}
func (h *FeedbackHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.feedback.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// UpdateDraft handles PUT /api/feedback/session/{sessionID}/draft
func (h *FeedbackHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req domain.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	session, err := h.feedback.UpdateDraft(r.Context(), sessionID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Advance handles POST /api/feedback/session/{sessionID}/advance
func (h *FeedbackHandler) Advance(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, submission, err := h.feedback.Advance(r.Context(), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	if submission != nil {
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"session": session,
			"submission": &domain.SubmissionResponse{
				SubmissionID: submission.SubmissionID,
				WorkshopID:   submission.WorkshopID,
				SubmittedAt:  submission.SubmittedAt,
				Message:      "Thank you, your feedback has been recorded",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Retreat handles POST /api/feedback/session/{sessionID}/retreat
func (h *FeedbackHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.feedback.Retreat(r.Context(), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// RequestCode handles POST /api/feedback/session/{sessionID}/verification/{channel}/request
func (h *FeedbackHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	kind, err := domain.ParseChannelKind(chi.URLParam(r, "channel"))
	if err != nil {
		respondError(w, err)
		return
	}

	session, err := h.verification.RequestCode(r.Context(), sessionID, kind)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// SubmitCode handles POST /api/feedback/session/{sessionID}/verification/{channel}/submit
func (h *FeedbackHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	kind, err := domain.ParseChannelKind(chi.URLParam(r, "channel"))
	if err != nil {
		respondError(w, err)
		return
	}

	var req domain.SubmitCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.Code == "" {
		respondAppError(w, apperrors.NewValidationError("Verification code is required", nil))
		return
	}

	session, err := h.verification.SubmitCode(r.Context(), sessionID, kind, req.Code)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}
