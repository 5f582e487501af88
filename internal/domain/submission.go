package domain

import (
	"time"
)

// Submission is the immutable persisted result of one completed feedback
// session. It is append-only: nothing in this service edits a submission
// after insert.
type Submission struct {
	ID             string    `json:"id"`
	SubmissionID   string    `json:"submission_id"`
	WorkshopID     string    `json:"workshop_id"`
	Name           string    `json:"name"`
	Course         string    `json:"course"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Feedback       string    `json:"feedback"`
	PhoneVerified  bool      `json:"phone_verified"`
	EmailVerified  bool      `json:"email_verified"`
	CertificateURL string    `json:"certificate_url,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// DraftRequest is the attendee payload for updating session form fields.
// Pointers distinguish "not sent" from "cleared".
type DraftRequest struct {
	Name     *string `json:"name,omitempty"`
	Course   *string `json:"course,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Feedback *string `json:"feedback,omitempty"`
}

// SubmitCodeRequest carries a user-entered one-time code.
type SubmitCodeRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// SessionResponse is the attendee-facing view of a session. Outstanding
// codes are never exposed.
type SessionResponse struct {
	ID            string        `json:"id"`
	WorkshopID    string        `json:"workshop_id"`
	Stage         string        `json:"stage"`
	Draft         FormDraft     `json:"draft"`
	PhoneState    ProofState    `json:"phone_state"`
	EmailState    ProofState    `json:"email_state"`
	PhoneCooldown time.Duration `json:"phone_cooldown_seconds"`
	EmailCooldown time.Duration `json:"email_cooldown_seconds"`
	Submitted     bool          `json:"submitted"`
}

// NewSessionResponse builds the public view of a session at the given time.
func NewSessionResponse(s *FeedbackSession, now time.Time) *SessionResponse {
	return &SessionResponse{
		ID:            s.ID,
		WorkshopID:    s.WorkshopID,
		Stage:         s.Stage.String(),
		Draft:         s.Draft,
		PhoneState:    s.Phone.State,
		EmailState:    s.Email.State,
		PhoneCooldown: s.Phone.CooldownRemaining(now) / time.Second,
		EmailCooldown: s.Email.CooldownRemaining(now) / time.Second,
		Submitted:     s.Submitted,
	}
}

// SubmissionResponse is returned after a successful submit.
type SubmissionResponse struct {
	SubmissionID string    `json:"submission_id"`
	WorkshopID   string    `json:"workshop_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Message      string    `json:"message"`
}
