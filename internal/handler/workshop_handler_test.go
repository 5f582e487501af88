package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"feedback-be/internal/domain"
)

func TestValidateWorkshopRequest(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")

	valid := func() *domain.WorkshopRequest {
		return &domain.WorkshopRequest{
			WorkshopName: "Intro to Robotics",
			CollegeName:  "Springfield College",
			Date:         tomorrow,
			Time:         "10:00",
			Instructions: "Share honest feedback.",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.WorkshopRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(r *domain.WorkshopRequest) {},
		},
		{
			name:    "missing name",
			mutate:  func(r *domain.WorkshopRequest) { r.WorkshopName = "" },
			wantErr: "workshop name is required",
		},
		{
			name: "name too long",
			mutate: func(r *domain.WorkshopRequest) {
				for len(r.WorkshopName) <= 100 {
					r.WorkshopName += "x"
				}
			},
			wantErr: "100 characters",
		},
		{
			name:    "missing college",
			mutate:  func(r *domain.WorkshopRequest) { r.CollegeName = "" },
			wantErr: "college name is required",
		},
		{
			name:    "missing instructions",
			mutate:  func(r *domain.WorkshopRequest) { r.Instructions = "" },
			wantErr: "instructions are required",
		},
		{
			name:    "bad date format",
			mutate:  func(r *domain.WorkshopRequest) { r.Date = "15-09-2026" },
			wantErr: "YYYY-MM-DD",
		},
		{
			// Past dates pass format validation; only Create rejects them,
			// so editing an already held workshop keeps working.
			name:   "date in the past",
			mutate: func(r *domain.WorkshopRequest) { r.Date = "2020-01-01" },
		},
		{
			name:    "bad time format",
			mutate:  func(r *domain.WorkshopRequest) { r.Time = "10am" },
			wantErr: "HH:MM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			err := validateWorkshopRequest(req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateWorkshopDate(t *testing.T) {
	// Late evening in a zone well ahead of UTC. Truncating against the Unix
	// epoch would call the same local day "past"; the calendar comparison
	// must not.
	loc := time.FixedZone("UTC+12", 12*60*60)
	now := time.Date(2026, 9, 15, 23, 30, 0, 0, loc)

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "tomorrow", date: "2026-09-16"},
		{name: "same calendar day late at night", date: "2026-09-15"},
		{name: "yesterday", date: "2026-09-14", wantErr: true},
		{name: "long past", date: "2020-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWorkshopDate(tt.date, now)
			if tt.wantErr {
				assert.ErrorContains(t, err, "cannot be in the past")
				return
			}
			assert.NoError(t, err)
		})
	}
}
