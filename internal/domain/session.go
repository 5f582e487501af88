package domain

import (
	"time"
)

// Stage is one step of the feedback wizard.
type Stage int

const (
	StagePersonalInfo Stage = iota
	StagePhoneVerify
	StageEmailVerify
	StageFeedback
	StageComplete
)

// String returns the wire name of a stage.
func (s Stage) String() string {
	switch s {
	case StagePersonalInfo:
		return "personal_info"
	case StagePhoneVerify:
		return "phone_verify"
	case StageEmailVerify:
		return "email_verify"
	case StageFeedback:
		return "feedback"
	case StageComplete:
		return "complete"
	}
	return "unknown"
}

// FormDraft holds the mutable, in-progress form fields of one session.
type FormDraft struct {
	Name     string `json:"name"`
	Course   string `json:"course"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
}

// FeedbackSession is the full state of one attendee's pass through the
// wizard: the draft, both verification channels, and the current stage.
// It is owned by exactly one interactive user and is never shared across
// sessions.
type FeedbackSession struct {
	ID         string              `json:"id"`
	WorkshopID string              `json:"workshop_id"`
	Stage      Stage               `json:"stage"`
	Draft      FormDraft           `json:"draft"`
	Phone      VerificationChannel `json:"phone_channel"`
	Email      VerificationChannel `json:"email_channel"`
	Submitted  bool                `json:"submitted"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewFeedbackSession creates a session at the initial stage for a resolved
// workshop.
func NewFeedbackSession(id, workshopID string, now time.Time) *FeedbackSession {
	return &FeedbackSession{
		ID:         id,
		WorkshopID: workshopID,
		Stage:      StagePersonalInfo,
		Phone:      NewVerificationChannel(ChannelPhone),
		Email:      NewVerificationChannel(ChannelEmail),
		CreatedAt:  now,
	}
}

// Channel returns the verification channel of the given kind.
func (s *FeedbackSession) Channel(kind ChannelKind) (*VerificationChannel, error) {
	switch kind {
	case ChannelPhone:
		return &s.Phone, nil
	case ChannelEmail:
		return &s.Email, nil
	}
	return nil, ErrInvalidChannel
}

// CanAdvance checks the guard of the current stage without transitioning.
func (s *FeedbackSession) CanAdvance() error {
	switch s.Stage {
	case StagePersonalInfo:
		if s.Draft.Name == "" || s.Draft.Course == "" {
			return ErrGuardNotSatisfied
		}
	case StagePhoneVerify:
		if !s.Phone.Verified() {
			return ErrGuardNotSatisfied
		}
	case StageEmailVerify:
		if !s.Email.Verified() {
			return ErrGuardNotSatisfied
		}
	case StageFeedback:
		if s.Draft.Feedback == "" {
			return ErrGuardNotSatisfied
		}
	case StageComplete:
		return ErrSessionComplete
	}
	return nil
}

// Advance moves the session to the next stage if the current stage's guard
// holds. A failed guard leaves the stage unchanged. Advancing out of the
// feedback stage is only valid once the submission has been persisted; the
// caller enforces that ordering.
func (s *FeedbackSession) Advance() error {
	if err := s.CanAdvance(); err != nil {
		return err
	}
	s.Stage++
	return nil
}

// Retreat moves the session back one stage. It is always permitted from any
// non-initial, non-terminal stage. Verification already achieved survives a
// retreat.
func (s *FeedbackSession) Retreat() error {
	switch s.Stage {
	case StagePersonalInfo:
		return ErrGuardNotSatisfied
	case StageComplete:
		return ErrSessionComplete
	}
	s.Stage--
	return nil
}
