package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-be/internal/domain"
)

func TestWriteWorkshopsCSV(t *testing.T) {
	ctx := context.Background()
	ws := activeWorkshop()
	ws.CreatedAt = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	svc := NewExportService(newFakeWorkshopRepo(ws), &fakeSubmissionRepo{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteWorkshopsCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"id", "workshop_name", "college_name", "date", "time", "is_active", "public_link", "created_at"}, records[0])
	assert.Equal(t, "ws-1", records[1][0])
	assert.Equal(t, "Intro to Robotics", records[1][1])
	assert.Equal(t, "true", records[1][5])
	assert.Equal(t, "2026-08-01T09:00:00Z", records[1][7])
}

func TestWriteSubmissionsCSV(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubmissionRepo{}
	require.NoError(t, subs.Create(ctx, &domain.Submission{
		SubmissionID:  "FB2026aabbccdd",
		WorkshopID:    "ws-1",
		Name:          "Alice",
		Course:        "Robotics 101",
		Phone:         "0812345678",
		Email:         "alice@example.com",
		Feedback:      "Great, \"hands-on\" and practical",
		PhoneVerified: true,
		EmailVerified: true,
		SubmittedAt:   time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC),
	}))

	svc := NewExportService(newFakeWorkshopRepo(), subs)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteSubmissionsCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "FB2026aabbccdd", row[0])
	assert.Equal(t, "Alice", row[2])
	// Quoting survives the round trip.
	assert.Equal(t, "Great, \"hands-on\" and practical", row[6])
	assert.Equal(t, "2026-08-01T15:30:00Z", row[9])
}

func TestWriteCSVEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewExportService(newFakeWorkshopRepo(), &fakeSubmissionRepo{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteSubmissionsCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header only.
	require.Len(t, records, 1)
}
