package domain

import (
	"time"
)

// Workshop identifies one feedback campaign. It is created and managed by an
// administrator and read-only from the feedback flow's perspective.
type Workshop struct {
	ID           string     `json:"id"`
	AdminID      string     `json:"admin_id"`
	WorkshopName string     `json:"workshop_name"`
	CollegeName  string     `json:"college_name"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Time         string     `json:"time"` // HH:MM
	Instructions string     `json:"instructions"`
	IsActive     bool       `json:"is_active"`
	PublicLink   string     `json:"public_link"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// WorkshopRequest is the admin payload for creating or updating a workshop.
type WorkshopRequest struct {
	WorkshopName string `json:"workshop_name" validate:"required,max=100"`
	CollegeName  string `json:"college_name" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
}

// WorkshopResponse is a workshop plus its shareable feedback URL.
type WorkshopResponse struct {
	Workshop
	FeedbackURL string `json:"feedback_url"`
}

// ResolvedWorkshop is the public view of a workshop returned to attendees.
// Admin-only fields are withheld.
type ResolvedWorkshop struct {
	ID           string `json:"id"`
	WorkshopName string `json:"workshop_name"`
	CollegeName  string `json:"college_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Instructions string `json:"instructions"`
}

// PublicView strips admin-only fields for attendee-facing responses.
func (w *Workshop) PublicView() *ResolvedWorkshop {
	return &ResolvedWorkshop{
		ID:           w.ID,
		WorkshopName: w.WorkshopName,
		CollegeName:  w.CollegeName,
		Date:         w.Date,
		Time:         w.Time,
		Instructions: w.Instructions,
	}
}
