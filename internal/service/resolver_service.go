package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"feedback-be/internal/domain"
	"feedback-be/internal/repository"
	"feedback-be/pkg/redis"
)

// ResolverService resolves an opaque public link to a workshop and enforces
// its activation state. Resolution is read-only and idempotent.
type ResolverService struct {
	workshops repository.WorkshopRepository
	redis     *redis.Client
	logger    *zap.Logger
}

func NewResolverService(workshops repository.WorkshopRepository, redisClient *redis.Client, logger *zap.Logger) *ResolverService {
	return &ResolverService{
		workshops: workshops,
		redis:     redisClient,
		logger:    logger,
	}
}

// ResolveByLink returns the workshop behind a public link. The activation
// flag is enforced on every call, including cache hits, so a cached record
// of a deactivated workshop still resolves as inactive.
func (s *ResolverService) ResolveByLink(ctx context.Context, link string) (*domain.Workshop, error) {
	if link == "" {
		return nil, domain.ErrWorkshopNotFound
	}

	cacheKey := s.redis.KeyBuilder.KeyWorkshopByLink(link)
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
		var workshop domain.Workshop
		if err := json.Unmarshal([]byte(cached), &workshop); err == nil {
			return s.checkActive(&workshop)
		}
	}

	workshop, err := s.workshops.GetByLink(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workshop link: %w", err)
	}
	if workshop == nil {
		return nil, domain.ErrWorkshopNotFound
	}

	if data, err := json.Marshal(workshop); err == nil {
		if err := s.redis.Set(ctx, cacheKey, string(data), redis.TTLWorkshopLink); err != nil {
			s.logger.Warn("failed to cache resolved workshop",
				zap.String("workshop_id", workshop.ID),
				zap.Error(err))
		}
	}

	return s.checkActive(workshop)
}

// GetActiveWorkshop re-reads a workshop straight from the database, bypassing
// the resolution cache. The assembler uses it at submit time to observe a
// mid-session deactivation.
func (s *ResolverService) GetActiveWorkshop(ctx context.Context, id string) (*domain.Workshop, error) {
	workshop, err := s.workshops.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}
	if workshop == nil {
		return nil, domain.ErrWorkshopNotFound
	}
	return s.checkActive(workshop)
}

func (s *ResolverService) checkActive(workshop *domain.Workshop) (*domain.Workshop, error) {
	if !workshop.IsActive {
		return nil, domain.ErrWorkshopInactive
	}
	return workshop, nil
}
