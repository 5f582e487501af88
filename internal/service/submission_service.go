package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"feedback-be/internal/domain"
	"feedback-be/internal/repository"
	"feedback-be/pkg/redis"
)

// SubmissionService assembles a completed session into one immutable
// submission record. Its insert is the only write side effect of the whole
// feedback flow.
type SubmissionService struct {
	resolver    *ResolverService
	submissions repository.SubmissionRepository
	redis       *redis.Client
	logger      *zap.Logger
}

func NewSubmissionService(resolver *ResolverService, submissions repository.SubmissionRepository, redisClient *redis.Client, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		resolver:    resolver,
		submissions: submissions,
		redis:       redisClient,
		logger:      logger,
	}
}

// Submit validates the session's preconditions, re-checks the workshop
// against the database, and persists exactly one submission. On success the
// session is marked submitted; the caller persists that flag. On failure no
// partial write remains, so re-invoking with the same session is safe.
func (s *SubmissionService) Submit(ctx context.Context, session *domain.FeedbackSession) (*domain.Submission, error) {
	if session.Submitted {
		return nil, domain.ErrAlreadySubmitted
	}
	if !session.Phone.Verified() || !session.Email.Verified() {
		return nil, domain.ErrVerificationIncomplete
	}
	if session.Draft.Feedback == "" {
		return nil, domain.ErrGuardNotSatisfied
	}

	// Closes the race where the workshop is deactivated mid-session.
	workshop, err := s.resolver.GetActiveWorkshop(ctx, session.WorkshopID)
	if err != nil {
		return nil, err
	}

	// Guards a double-click racing two submits for the same session. The lock
	// value carries the submission code so a held lock can be resolved against
	// the database rather than wedging the session.
	submissionID := s.generateSubmissionID()
	lockKey := s.redis.KeyBuilder.KeySubmitted(session.ID)
	acquired, err := s.redis.SetNX(ctx, lockKey, submissionID, redis.TTLSubmitted)
	if err != nil {
		s.logger.Warn("failed to acquire submission lock, proceeding without it",
			zap.String("session_id", session.ID),
			zap.Error(err))
	} else if !acquired {
		return s.resolveHeldLock(ctx, session, lockKey)
	}

	submission := &domain.Submission{
		SubmissionID:  submissionID,
		WorkshopID:    workshop.ID,
		Name:          session.Draft.Name,
		Course:        session.Draft.Course,
		Phone:         session.Draft.Phone,
		Email:         session.Draft.Email,
		Feedback:      session.Draft.Feedback,
		PhoneVerified: true,
		EmailVerified: true,
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		// Release the lock so the user can retry; nothing was written.
		if delErr := s.redis.Delete(ctx, lockKey); delErr != nil {
			s.logger.Warn("failed to release submission lock",
				zap.String("session_id", session.ID),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	session.Submitted = true

	s.logger.Info("submission persisted",
		zap.String("session_id", session.ID),
		zap.String("submission_id", submission.SubmissionID),
		zap.String("workshop_id", workshop.ID))

	return submission, nil
}

// resolveHeldLock handles a submit attempt that found the lock already held.
// If the earlier attempt's insert landed but the session flag was lost (for
// example a failed session save right after the insert), the recorded
// submission is returned and the session marked submitted so it can still
// reach the terminal stage. Otherwise the attempt is a duplicate.
func (s *SubmissionService) resolveHeldLock(ctx context.Context, session *domain.FeedbackSession, lockKey string) (*domain.Submission, error) {
	heldID, err := s.redis.Get(ctx, lockKey)
	if err != nil || heldID == "" {
		return nil, domain.ErrAlreadySubmitted
	}

	record, err := s.submissions.GetBySubmissionID(ctx, heldID)
	if err != nil || record == nil {
		return nil, domain.ErrAlreadySubmitted
	}

	session.Submitted = true

	s.logger.Info("recovered recorded submission for held lock",
		zap.String("session_id", session.ID),
		zap.String("submission_id", record.SubmissionID))

	return record, nil
}

// generateSubmissionID generates a human-referenceable submission code.
func (s *SubmissionService) generateSubmissionID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return fmt.Sprintf("FB%d%s", time.Now().Year(), hex.EncodeToString(bytes))
}
