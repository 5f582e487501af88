package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"feedback-be/internal/repository"
)

// ExportService streams workshop and submission data as CSV.
type ExportService struct {
	workshops   repository.WorkshopRepository
	submissions repository.SubmissionRepository
}

func NewExportService(workshops repository.WorkshopRepository, submissions repository.SubmissionRepository) *ExportService {
	return &ExportService{workshops: workshops, submissions: submissions}
}

// WriteWorkshopsCSV writes every workshop as one CSV row.
func (s *ExportService) WriteWorkshopsCSV(ctx context.Context, w io.Writer) error {
	workshops, err := s.workshops.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workshops for export: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "workshop_name", "college_name", "date", "time", "is_active", "public_link", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for i := range workshops {
		ws := &workshops[i]
		row := []string{
			ws.ID,
			ws.WorkshopName,
			ws.CollegeName,
			ws.Date,
			ws.Time,
			strconv.FormatBool(ws.IsActive),
			ws.PublicLink,
			ws.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSubmissionsCSV writes every submission as one CSV row.
func (s *ExportService) WriteSubmissionsCSV(ctx context.Context, w io.Writer) error {
	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load submissions for export: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"submission_id", "workshop_id", "name", "course", "phone", "email", "feedback", "phone_verified", "email_verified", "submitted_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for i := range submissions {
		sub := &submissions[i]
		row := []string{
			sub.SubmissionID,
			sub.WorkshopID,
			sub.Name,
			sub.Course,
			sub.Phone,
			sub.Email,
			sub.Feedback,
			strconv.FormatBool(sub.PhoneVerified),
			strconv.FormatBool(sub.EmailVerified),
			sub.SubmittedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
