package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"feedback-be/internal/domain"
	"feedback-be/internal/service/delivery"
	"feedback-be/pkg/utils"
)

// VerificationService is the verification gate: it issues one-time codes for
// a session's contact channels and checks user-submitted codes against them.
// Channels are independent; a failure on one never touches the other.
type VerificationService struct {
	sessions  *SessionStore
	provider  delivery.Provider
	fixedCode string // dev stand-in; empty in production
	logger    *zap.Logger
	now       func() time.Time
}

func NewVerificationService(sessions *SessionStore, provider delivery.Provider, fixedCode string, logger *zap.Logger) *VerificationService {
	return &VerificationService{
		sessions:  sessions,
		provider:  provider,
		fixedCode: fixedCode,
		logger:    logger,
		now:       time.Now,
	}
}

// RequestCode issues a fresh code for the channel and hands it to the
// delivery provider. A second request within the resend cooldown returns
// domain.ErrCooldownActive and sends nothing.
func (s *VerificationService) RequestCode(ctx context.Context, sessionID string, kind domain.ChannelKind) (*domain.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	channel, err := session.Channel(kind)
	if err != nil {
		return nil, err
	}

	target, err := s.normalizeTarget(kind, session.Draft)
	if err != nil {
		return nil, err
	}
	if err := channel.SetTarget(target); err != nil {
		return nil, err
	}

	code := s.fixedCode
	if code == "" {
		if code, err = utils.GenerateOTPCode(); err != nil {
			return nil, err
		}
	}

	now := s.now()
	if err := channel.BeginChallenge(code, now); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if err := s.provider.Send(ctx, kind, channel.Target, code); err != nil {
		s.logger.Warn("failed to deliver verification code",
			zap.String("session_id", sessionID),
			zap.String("channel", string(kind)),
			zap.Error(err))
		// Nothing reached the target, so lift the resend lockout; the user
		// can request again right away.
		channel.CancelChallenge()
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			s.logger.Warn("failed to roll back undelivered challenge",
				zap.String("session_id", sessionID),
				zap.String("channel", string(kind)),
				zap.Error(saveErr))
		}
		return nil, fmt.Errorf("failed to deliver verification code: %w", err)
	}

	s.logger.Info("verification code sent",
		zap.String("session_id", sessionID),
		zap.String("channel", string(kind)))

	return domain.NewSessionResponse(session, now), nil
}

// SubmitCode checks a user-entered code. A match verifies the channel
// permanently for this session; a mismatch moves it to failed and permits a
// retry or a fresh request once the cooldown expires.
func (s *VerificationService) SubmitCode(ctx context.Context, sessionID string, kind domain.ChannelKind, code string) (*domain.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	channel, err := session.Channel(kind)
	if err != nil {
		return nil, err
	}

	now := s.now()
	submitErr := channel.SubmitCode(code, now)

	// A mismatch still transitions the channel, so persist before returning.
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, submitErr
	}

	s.logger.Info("channel verified",
		zap.String("session_id", sessionID),
		zap.String("channel", string(kind)))

	return domain.NewSessionResponse(session, now), nil
}

func (s *VerificationService) normalizeTarget(kind domain.ChannelKind, draft domain.FormDraft) (string, error) {
	switch kind {
	case domain.ChannelPhone:
		normalized, err := utils.NormalizePhoneNumber(draft.Phone)
		if err != nil {
			return "", domain.ErrInvalidTarget
		}
		return normalized, nil
	case domain.ChannelEmail:
		if !utils.ValidateEmail(draft.Email) {
			return "", domain.ErrInvalidTarget
		}
		return draft.Email, nil
	}
	return "", domain.ErrInvalidChannel
}
