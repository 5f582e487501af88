package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"feedback-be/internal/domain"
	"feedback-be/internal/repository"
	"feedback-be/pkg/redis"
	"feedback-be/pkg/utils"
)

const maxLinkAttempts = 3

// WorkshopService covers the admin side of workshops: creation with a unique
// public link, listing, metadata updates, activation toggling, and deletion.
// Every operation is scoped to the acting admin's own workshops.
type WorkshopService struct {
	workshops     repository.WorkshopRepository
	submissions   repository.SubmissionRepository
	redis         *redis.Client
	publicBaseURL string
	logger        *zap.Logger
}

func NewWorkshopService(workshops repository.WorkshopRepository, submissions repository.SubmissionRepository, redisClient *redis.Client, publicBaseURL string, logger *zap.Logger) *WorkshopService {
	return &WorkshopService{
		workshops:     workshops,
		submissions:   submissions,
		redis:         redisClient,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Create inserts a new workshop with a freshly generated public link. A link
// collision retries with a new token.
func (s *WorkshopService) Create(ctx context.Context, adminID string, req *domain.WorkshopRequest) (*domain.WorkshopResponse, error) {
	workshop := &domain.Workshop{
		AdminID:      adminID,
		WorkshopName: req.WorkshopName,
		CollegeName:  req.CollegeName,
		Date:         req.Date,
		Time:         req.Time,
		Instructions: req.Instructions,
		IsActive:     true,
	}

	var err error
	for attempt := 0; attempt < maxLinkAttempts; attempt++ {
		workshop.PublicLink, err = utils.GenerateLinkToken()
		if err != nil {
			return nil, err
		}
		err = s.workshops.Create(ctx, workshop)
		if err == nil {
			break
		}
		if err != domain.ErrLinkTaken {
			return nil, fmt.Errorf("failed to create workshop: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to allocate a unique public link: %w", err)
	}

	s.logger.Info("workshop created",
		zap.String("workshop_id", workshop.ID),
		zap.String("admin_id", adminID))

	return s.toResponse(workshop), nil
}

// List returns the acting admin's workshops.
func (s *WorkshopService) List(ctx context.Context, adminID string) ([]domain.WorkshopResponse, error) {
	workshops, err := s.workshops.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	responses := make([]domain.WorkshopResponse, 0, len(workshops))
	for i := range workshops {
		responses = append(responses, *s.toResponse(&workshops[i]))
	}
	return responses, nil
}

// Get returns one workshop owned by the acting admin. A workshop owned by
// someone else reads as not found.
func (s *WorkshopService) Get(ctx context.Context, adminID, id string) (*domain.WorkshopResponse, error) {
	workshop, err := s.getOwned(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(workshop), nil
}

// Update replaces a workshop's display metadata. The public link and
// activation flag are untouched.
func (s *WorkshopService) Update(ctx context.Context, adminID, id string, req *domain.WorkshopRequest) (*domain.WorkshopResponse, error) {
	workshop, err := s.getOwned(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	workshop.WorkshopName = req.WorkshopName
	workshop.CollegeName = req.CollegeName
	workshop.Date = req.Date
	workshop.Time = req.Time
	workshop.Instructions = req.Instructions

	if err := s.workshops.Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}

	s.invalidateLink(ctx, workshop.PublicLink)
	return s.toResponse(workshop), nil
}

// SetActive toggles whether the workshop's public link accepts feedback.
func (s *WorkshopService) SetActive(ctx context.Context, adminID, id string, active bool) (*domain.WorkshopResponse, error) {
	workshop, err := s.getOwned(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	if err := s.workshops.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("failed to set workshop activation: %w", err)
	}
	workshop.IsActive = active

	s.invalidateLink(ctx, workshop.PublicLink)

	s.logger.Info("workshop activation changed",
		zap.String("workshop_id", id),
		zap.Bool("active", active))

	return s.toResponse(workshop), nil
}

// Delete removes a workshop. Its public link stops resolving immediately.
func (s *WorkshopService) Delete(ctx context.Context, adminID, id string) error {
	workshop, err := s.getOwned(ctx, adminID, id)
	if err != nil {
		return err
	}

	if err := s.workshops.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	s.invalidateLink(ctx, workshop.PublicLink)
	return nil
}

// ListSubmissions returns all submissions collected for one of the acting
// admin's workshops.
func (s *WorkshopService) ListSubmissions(ctx context.Context, adminID, id string) ([]domain.Submission, error) {
	if _, err := s.getOwned(ctx, adminID, id); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByWorkshop(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *WorkshopService) getOwned(ctx context.Context, adminID, id string) (*domain.Workshop, error) {
	workshop, err := s.workshops.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}
	if workshop == nil || workshop.AdminID != adminID {
		return nil, domain.ErrWorkshopNotFound
	}
	return workshop, nil
}

func (s *WorkshopService) toResponse(workshop *domain.Workshop) *domain.WorkshopResponse {
	return &domain.WorkshopResponse{
		Workshop:    *workshop,
		FeedbackURL: fmt.Sprintf("%s/feedback/%s", s.publicBaseURL, workshop.PublicLink),
	}
}

func (s *WorkshopService) invalidateLink(ctx context.Context, link string) {
	key := s.redis.KeyBuilder.KeyWorkshopByLink(link)
	if err := s.redis.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate workshop link cache",
			zap.String("link_prefix", link[:min(4, len(link))]),
			zap.Error(err))
	}
}
