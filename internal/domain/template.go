package domain

import (
	"time"
)

// CertificateTemplate is the metadata record for a certificate template.
// The template file itself lives in external object storage; this service
// tracks only the download URL and which template is currently active.
type CertificateTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateRequest is the admin payload for registering a template.
type TemplateRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}
