package repository

import (
	"context"
	"fmt"

	"feedback-be/internal/domain"
	"feedback-be/pkg/database"
)

type PostgresTemplateRepository struct {
	db *database.PostgresDB
}

func NewTemplateRepository(db *database.PostgresDB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{db: db}
}

// Create inserts a template record
func (r *PostgresTemplateRepository) Create(ctx context.Context, template *domain.CertificateTemplate) error {
	query := `
		INSERT INTO certificate_templates (name, url, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		template.Name,
		template.URL,
		template.IsActive,
	).Scan(&template.ID, &template.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// List gets all templates, newest first
func (r *PostgresTemplateRepository) List(ctx context.Context) ([]domain.CertificateTemplate, error) {
	query := `SELECT id, name, url, is_active, created_at FROM certificate_templates ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.CertificateTemplate
	for rows.Next() {
		var t domain.CertificateTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.URL, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// SetActive marks one template active and deactivates all others in a single
// transaction, preserving the at-most-one-active invariant.
func (r *PostgresTemplateRepository) SetActive(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE certificate_templates SET is_active = false WHERE is_active = true`); err != nil {
		return fmt.Errorf("failed to deactivate templates: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE certificate_templates SET is_active = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes a template record
func (r *PostgresTemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM certificate_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
