package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"feedback-be/internal/domain"
	apperrors "feedback-be/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	var resp apperrors.ErrorResponse
	resp.Error.Type = appErr.Type
	resp.Error.Message = appErr.Message
	resp.Error.Details = appErr.Details
	resp.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)
	respondJSON(w, appErr.StatusCode, resp)
}

// respondError translates an error from the service layer into the JSON error
// envelope. Unrecognized errors surface as opaque internal errors.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondAppError(w, appErr)
		return
	}
	respondAppError(w, mapDomainError(err))
}

func mapDomainError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrWorkshopNotFound):
		return apperrors.NewNotFoundError("Workshop not found")
	case errors.Is(err, domain.ErrWorkshopInactive):
		return apperrors.NewGoneError("This workshop is no longer accepting feedback")
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.NewNotFoundError("Feedback session not found or expired")
	case errors.Is(err, domain.ErrTemplateNotFound):
		return apperrors.NewNotFoundError("Certificate template not found")
	case errors.Is(err, domain.ErrSessionComplete):
		return apperrors.NewConflictError("Feedback session is already complete")
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return apperrors.NewConflictError("Feedback has already been submitted for this session")
	case errors.Is(err, domain.ErrAlreadyVerified):
		return apperrors.NewConflictError("This channel is already verified")
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.NewConflictError("An account with this email already exists")
	case errors.Is(err, domain.ErrCooldownActive):
		return apperrors.NewRateLimitError("Please wait before requesting another code")
	case errors.Is(err, domain.ErrGuardNotSatisfied):
		return apperrors.NewValidationError("Current step requirements are not met", nil)
	case errors.Is(err, domain.ErrVerificationIncomplete):
		return apperrors.NewValidationError("Phone and email must both be verified before submitting", nil)
	case errors.Is(err, domain.ErrInvalidChannel):
		return apperrors.NewValidationError("Unknown verification channel", nil)
	case errors.Is(err, domain.ErrInvalidTarget):
		return apperrors.NewValidationError("Enter a valid phone number or email address first", nil)
	case errors.Is(err, domain.ErrNoCodeIssued):
		return apperrors.NewValidationError("Request a verification code first", nil)
	case errors.Is(err, domain.ErrCodeMismatch):
		return apperrors.NewValidationError("Verification code does not match", nil)
	case errors.Is(err, domain.ErrCodeExpired):
		return apperrors.NewValidationError("Verification code has expired, request a new one", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.NewAuthenticationError("Invalid email or password")
	}
	return apperrors.NewInternalError("Something went wrong", err)
}
