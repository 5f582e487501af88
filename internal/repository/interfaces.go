package repository

import (
	"context"

	"feedback-be/internal/domain"
)

// WorkshopRepository defines the interface for workshop data operations
type WorkshopRepository interface {
	// Create inserts a new workshop
	Create(ctx context.Context, workshop *domain.Workshop) error

	// GetByID retrieves a workshop by ID
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)

	// GetByLink retrieves a workshop by its public link
	GetByLink(ctx context.Context, link string) (*domain.Workshop, error)

	// ListByAdmin retrieves all workshops created by an admin
	ListByAdmin(ctx context.Context, adminID string) ([]domain.Workshop, error)

	// ListAll retrieves every workshop (export)
	ListAll(ctx context.Context) ([]domain.Workshop, error)

	// Update updates workshop display metadata
	Update(ctx context.Context, workshop *domain.Workshop) error

	// SetActive toggles the activation flag
	SetActive(ctx context.Context, id string, active bool) error

	// Delete removes a workshop
	Delete(ctx context.Context, id string) error
}

// SubmissionRepository defines the interface for submission data operations
type SubmissionRepository interface {
	// Create inserts a new submission record
	Create(ctx context.Context, submission *domain.Submission) error

	// GetBySubmissionID retrieves a submission by its public code
	GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Submission, error)

	// ListByWorkshop retrieves all submissions for a workshop
	ListByWorkshop(ctx context.Context, workshopID string) ([]domain.Submission, error)

	// ListAll retrieves every submission (export)
	ListAll(ctx context.Context) ([]domain.Submission, error)
}

// TemplateRepository defines the interface for certificate template metadata
type TemplateRepository interface {
	// Create inserts a template record
	Create(ctx context.Context, template *domain.CertificateTemplate) error

	// List retrieves all templates
	List(ctx context.Context) ([]domain.CertificateTemplate, error)

	// SetActive marks one template active and deactivates the rest
	SetActive(ctx context.Context, id string) error

	// Delete removes a template record
	Delete(ctx context.Context, id string) error
}

// AdminRepository defines the interface for admin account operations
type AdminRepository interface {
	// Create inserts a new admin account
	Create(ctx context.Context, admin *domain.Admin) error

	// GetByEmail retrieves an admin by email
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// GetByID retrieves an admin by ID
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}
