package handler

import (
	"fmt"
	"net/http"
	"time"

	"feedback-be/internal/service"
	apperrors "feedback-be/pkg/errors"
)

// ExportHandler streams CSV exports to admins.
type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Export handles GET /api/admin/export?type=workshops|submissions
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	exportType := r.URL.Query().Get("type")

	var write func() error
	switch exportType {
	case "workshops":
		write = func() error { return h.export.WriteWorkshopsCSV(r.Context(), w) }
	case "submissions":
		write = func() error { return h.export.WriteSubmissionsCSV(r.Context(), w) }
	default:
		respondAppError(w, apperrors.NewValidationError("Export type must be 'workshops' or 'submissions'", nil))
		return
	}

	filename := fmt.Sprintf("%s-export-%s.csv", exportType, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	// A load failure surfaces before any CSV bytes are written, so the
	// error envelope still reaches the client intact.
	if err := write(); err != nil {
		respondError(w, err)
	}
}
