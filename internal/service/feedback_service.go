package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback-be/internal/domain"
)

// FeedbackService drives an attendee through the feedback wizard: it starts
// sessions against resolved workshops, accepts draft edits, and steps the
// stage sequencer forwards and backwards. Crossing out of the feedback stage
// delegates to the submission assembler so the terminal stage is only ever
// reached with a persisted submission behind it.
type FeedbackService struct {
	resolver   *ResolverService
	sessions   *SessionStore
	submission *SubmissionService
	logger     *zap.Logger
	now        func() time.Time
}

func NewFeedbackService(resolver *ResolverService, sessions *SessionStore, submission *SubmissionService, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		resolver:   resolver,
		sessions:   sessions,
		submission: submission,
		logger:     logger,
		now:        time.Now,
	}
}

// ResolveWorkshop returns the attendee-facing view of the workshop behind a
// public link.
func (s *FeedbackService) ResolveWorkshop(ctx context.Context, link string) (*domain.ResolvedWorkshop, error) {
	workshop, err := s.resolver.ResolveByLink(ctx, link)
	if err != nil {
		return nil, err
	}
	return workshop.PublicView(), nil
}

// StartSession resolves the link and creates a fresh session at the initial
// stage. Every call starts a new session; resuming uses GetSession with the
// id handed out here.
func (s *FeedbackService) StartSession(ctx context.Context, link string) (*domain.SessionResponse, error) {
	workshop, err := s.resolver.ResolveByLink(ctx, link)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := domain.NewFeedbackSession(uuid.New().String(), workshop.ID, now)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("feedback session started",
		zap.String("session_id", session.ID),
		zap.String("workshop_id", workshop.ID))

	return domain.NewSessionResponse(session, now), nil
}

// GetSession returns the current state of a session.
func (s *FeedbackService) GetSession(ctx context.Context, sessionID string) (*domain.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return domain.NewSessionResponse(session, s.now()), nil
}

// UpdateDraft applies partial form edits to a session. Changing the phone or
// email value resets the matching channel unless it is already verified, in
// which case the edit is rejected. Completed sessions accept no edits.
func (s *FeedbackService) UpdateDraft(ctx context.Context, sessionID string, req *domain.DraftRequest) (*domain.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage == domain.StageComplete || session.Submitted {
		return nil, domain.ErrSessionComplete
	}

	if req.Name != nil {
		session.Draft.Name = *req.Name
	}
	if req.Course != nil {
		session.Draft.Course = *req.Course
	}
	if req.Feedback != nil {
		session.Draft.Feedback = *req.Feedback
	}
	if req.Phone != nil && *req.Phone != session.Draft.Phone {
		if err := session.Phone.SetTarget(*req.Phone); err != nil {
			return nil, err
		}
		session.Draft.Phone = *req.Phone
	}
	if req.Email != nil && *req.Email != session.Draft.Email {
		if err := session.Email.SetTarget(*req.Email); err != nil {
			return nil, err
		}
		session.Draft.Email = *req.Email
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return domain.NewSessionResponse(session, s.now()), nil
}

// Advance steps the session to the next stage. Advancing out of the feedback
// stage first assembles and persists the submission; only a successful insert
// reaches the terminal stage, and the submission result is returned alongside
// the session view.
func (s *FeedbackService) Advance(ctx context.Context, sessionID string) (*domain.SessionResponse, *domain.Submission, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	var submitted *domain.Submission
	if session.Stage == domain.StageFeedback {
		if err := session.CanAdvance(); err != nil {
			return nil, nil, err
		}
		submitted, err = s.submission.Submit(ctx, session)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := session.Advance(); err != nil {
		return nil, nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}

	return domain.NewSessionResponse(session, s.now()), submitted, nil
}

// Retreat steps the session back one stage. Verified channels keep their
// verification.
func (s *FeedbackService) Retreat(ctx context.Context, sessionID string) (*domain.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Retreat(); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return domain.NewSessionResponse(session, s.now()), nil
}
