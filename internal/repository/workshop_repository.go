package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"feedback-be/internal/domain"
	"feedback-be/pkg/database"
)

type PostgresWorkshopRepository struct {
	db *database.PostgresDB
}

func NewWorkshopRepository(db *database.PostgresDB) *PostgresWorkshopRepository {
	return &PostgresWorkshopRepository{db: db}
}

const workshopColumns = `id, admin_id, workshop_name, college_name, date, time, instructions, is_active, public_link, created_at, updated_at`

// Create inserts a new workshop record
func (r *PostgresWorkshopRepository) Create(ctx context.Context, workshop *domain.Workshop) error {
	query := `
		INSERT INTO workshops (admin_id, workshop_name, college_name, date, time, instructions, is_active, public_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		workshop.AdminID,
		workshop.WorkshopName,
		workshop.CollegeName,
		workshop.Date,
		workshop.Time,
		workshop.Instructions,
		workshop.IsActive,
		workshop.PublicLink,
	).Scan(&workshop.ID, &workshop.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrLinkTaken
		}
		return fmt.Errorf("failed to create workshop: %w", err)
	}

	return nil
}

// GetByID gets a workshop by ID
func (r *PostgresWorkshopRepository) GetByID(ctx context.Context, id string) (*domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE id = $1`

	workshop, err := r.scanWorkshop(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}
	return workshop, nil
}

// GetByLink gets a workshop by its opaque public link. The lookup is
// case sensitive.
func (r *PostgresWorkshopRepository) GetByLink(ctx context.Context, link string) (*domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE public_link = $1`

	workshop, err := r.scanWorkshop(r.db.Pool.QueryRow(ctx, query, link))
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop by link: %w", err)
	}
	return workshop, nil
}

// ListByAdmin gets all workshops created by an admin, newest first
func (r *PostgresWorkshopRepository) ListByAdmin(ctx context.Context, adminID string) ([]domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE admin_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer rows.Close()

	return r.collectWorkshops(rows)
}

// ListAll gets every workshop, newest first
func (r *PostgresWorkshopRepository) ListAll(ctx context.Context) ([]domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer rows.Close()

	return r.collectWorkshops(rows)
}

// Update updates workshop display metadata
func (r *PostgresWorkshopRepository) Update(ctx context.Context, workshop *domain.Workshop) error {
	query := `
		UPDATE workshops
		SET workshop_name = $2, college_name = $3, date = $4, time = $5, instructions = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		workshop.ID,
		workshop.WorkshopName,
		workshop.CollegeName,
		workshop.Date,
		workshop.Time,
		workshop.Instructions,
	).Scan(&workshop.UpdatedAt)

	if err == pgx.ErrNoRows {
		return domain.ErrWorkshopNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update workshop: %w", err)
	}

	return nil
}

// SetActive toggles the activation flag
func (r *PostgresWorkshopRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE workshops SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set workshop active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkshopNotFound
	}
	return nil
}

// Delete removes a workshop
func (r *PostgresWorkshopRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM workshops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkshopNotFound
	}
	return nil
}

func (r *PostgresWorkshopRepository) scanWorkshop(row pgx.Row) (*domain.Workshop, error) {
	var workshop domain.Workshop
	err := row.Scan(
		&workshop.ID,
		&workshop.AdminID,
		&workshop.WorkshopName,
		&workshop.CollegeName,
		&workshop.Date,
		&workshop.Time,
		&workshop.Instructions,
		&workshop.IsActive,
		&workshop.PublicLink,
		&workshop.CreatedAt,
		&workshop.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (r *PostgresWorkshopRepository) collectWorkshops(rows pgx.Rows) ([]domain.Workshop, error) {
	var workshops []domain.Workshop
	for rows.Next() {
		var workshop domain.Workshop
		err := rows.Scan(
			&workshop.ID,
			&workshop.AdminID,
			&workshop.WorkshopName,
			&workshop.CollegeName,
			&workshop.Date,
			&workshop.Time,
			&workshop.Instructions,
			&workshop.IsActive,
			&workshop.PublicLink,
			&workshop.CreatedAt,
			&workshop.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop: %w", err)
		}
		workshops = append(workshops, workshop)
	}
	return workshops, nil
}
