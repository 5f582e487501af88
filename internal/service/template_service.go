package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"feedback-be/internal/domain"
	"feedback-be/internal/repository"
)

// TemplateService manages certificate template metadata. At most one template
// is active at a time; activating one deactivates the rest.
type TemplateService struct {
	templates repository.TemplateRepository
	logger    *zap.Logger
}

func NewTemplateService(templates repository.TemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{templates: templates, logger: logger}
}

// Create registers a template record. New templates start inactive.
func (s *TemplateService) Create(ctx context.Context, req *domain.TemplateRequest) (*domain.CertificateTemplate, error) {
	template := &domain.CertificateTemplate{
		Name: req.Name,
		URL:  req.URL,
	}

	if err := s.templates.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("certificate template registered",
		zap.String("template_id", template.ID),
		zap.String("name", template.Name))

	return template, nil
}

// List returns all registered templates.
func (s *TemplateService) List(ctx context.Context) ([]domain.CertificateTemplate, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// Activate marks one template active and deactivates every other one.
func (s *TemplateService) Activate(ctx context.Context, id string) error {
	if err := s.templates.SetActive(ctx, id); err != nil {
		if err == domain.ErrTemplateNotFound {
			return err
		}
		return fmt.Errorf("failed to activate template: %w", err)
	}

	s.logger.Info("certificate template activated", zap.String("template_id", id))
	return nil
}

// Delete removes a template record.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		if err == domain.ErrTemplateNotFound {
			return err
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}
