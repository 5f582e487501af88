package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"feedback-be/internal/domain"
	"feedback-be/pkg/database"
)

type PostgresSubmissionRepository struct {
	db *database.PostgresDB
}

func NewSubmissionRepository(db *database.PostgresDB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

const submissionColumns = `id, submission_id, workshop_id, name, course, phone, email, feedback, phone_verified, email_verified, certificate_url, submitted_at`

// Create inserts a new submission record. Submissions are append-only; there
// is no update path.
func (r *PostgresSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (
			submission_id, workshop_id, name, course, phone, email, feedback,
			phone_verified, email_verified, certificate_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, submitted_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		submission.SubmissionID,
		submission.WorkshopID,
		submission.Name,
		submission.Course,
		submission.Phone,
		submission.Email,
		submission.Feedback,
		submission.PhoneVerified,
		submission.EmailVerified,
		submission.CertificateURL,
	).Scan(&submission.ID, &submission.SubmittedAt)

	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// GetBySubmissionID gets a submission by its public code
func (r *PostgresSubmissionRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE submission_id = $1`

	var s domain.Submission
	err := r.db.Pool.QueryRow(ctx, query, submissionID).Scan(
		&s.ID,
		&s.SubmissionID,
		&s.WorkshopID,
		&s.Name,
		&s.Course,
		&s.Phone,
		&s.Email,
		&s.Feedback,
		&s.PhoneVerified,
		&s.EmailVerified,
		&s.CertificateURL,
		&s.SubmittedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &s, nil
}

// ListByWorkshop gets all submissions for a workshop, newest first
func (r *PostgresSubmissionRepository) ListByWorkshop(ctx context.Context, workshopID string) ([]domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE workshop_id = $1 ORDER BY submitted_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return r.collectSubmissions(rows)
}

// ListAll gets every submission, newest first
func (r *PostgresSubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY submitted_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return r.collectSubmissions(rows)
}

func (r *PostgresSubmissionRepository) collectSubmissions(rows pgx.Rows) ([]domain.Submission, error) {
	var submissions []domain.Submission
	for rows.Next() {
		var s domain.Submission
		err := rows.Scan(
			&s.ID,
			&s.SubmissionID,
			&s.WorkshopID,
			&s.Name,
			&s.Course,
			&s.Phone,
			&s.Email,
			&s.Feedback,
			&s.PhoneVerified,
			&s.EmailVerified,
			&s.CertificateURL,
			&s.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}
