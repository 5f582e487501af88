package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"feedback-be/internal/service"
	"feedback-be/pkg/errors"
	"feedback-be/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

// AdminContextKey is the key for the authenticated admin's claims in context
const AdminContextKey ContextKey = "admin"

// AdminFromContext returns the authenticated admin's claims, or nil when the
// request did not pass through the auth middleware.
func AdminFromContext(ctx context.Context) *service.AdminClaims {
	claims, _ := ctx.Value(AdminContextKey).(*service.AdminClaims)
	return claims
}

// AdminAuth creates a middleware that requires a valid admin bearer token.
func AdminAuth(auth *service.AuthService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Authorization header is required"), logger)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid authorization header format"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Token is required"), logger)
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				logger.WithError(err).Warn("Token validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired token"), logger)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, claims)
			r = r.WithContext(ctx)

			logger.WithField("admin_id", claims.AdminID).Debug("Admin authenticated successfully")

			next.ServeHTTP(w, r)
		})
	}
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Warn("Request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	json.NewEncoder(w).Encode(response)
}
