package handler

import (
	"net/http"
	"time"

	"feedback-be/pkg/database"
	"feedback-be/pkg/redis"
)

// HealthHandler reports service liveness and the state of its dependencies.
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checks := make(map[string]string)
	status := "healthy"
	code := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		checks["database"] = "unhealthy"
		status = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if err := h.redis.Health(ctx); err != nil {
		checks["redis"] = "unhealthy"
		status = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "healthy"
	}

	respondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   "feedback-be",
		Checks:    checks,
	})
}
