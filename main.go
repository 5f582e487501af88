package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"feedback-be/internal/config"
	"feedback-be/internal/container"
	"feedback-be/internal/handler"
	"feedback-be/internal/middleware"
	"feedback-be/internal/repository"
	"feedback-be/internal/service"
	"feedback-be/pkg/database"
	"feedback-be/pkg/logger"
	"feedback-be/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	if r.db != nil {
		r.log.Info("Closing database connection pool...")
		r.db.Close()
		r.log.Info("Database connection pool closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting feedback-be server")

	// Create dependency injection container
	deps, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	redisClient := deps.GetRedisClient()

	// Initialize repositories
	workshopRepo := repository.NewWorkshopRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	sessionStore := service.NewSessionStore(redisClient)
	resolverService := service.NewResolverService(workshopRepo, redisClient, log.Logger)
	submissionService := service.NewSubmissionService(resolverService, submissionRepo, redisClient, log.Logger)
	feedbackService := service.NewFeedbackService(resolverService, sessionStore, submissionService, log.Logger)
	verificationService := service.NewVerificationService(sessionStore, deps.GetDeliveryProvider(), cfg.FixedOTPCode, log.Logger)
	workshopService := service.NewWorkshopService(workshopRepo, submissionRepo, redisClient, cfg.PublicBaseURL, log.Logger)
	templateService := service.NewTemplateService(templateRepo, log.Logger)
	exportService := service.NewExportService(workshopRepo, submissionRepo)
	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, log.Logger)

	// Setup router
	router := setupRouter(deps, &handlers{
		health:   handler.NewHealthHandler(db, redisClient),
		auth:     handler.NewAuthHandler(authService),
		feedback: handler.NewFeedbackHandler(feedbackService, verificationService),
		workshop: handler.NewWorkshopHandler(workshopService),
		template: handler.NewTemplateHandler(templateService),
		export:   handler.NewExportHandler(exportService),
	}, authService)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:          db,
		redisClient: redisClient,
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// handlers groups the HTTP handlers for router setup
type handlers struct {
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	feedback *handler.FeedbackHandler
	workshop *handler.WorkshopHandler
	template *handler.TemplateHandler
	export   *handler.ExportHandler
}

// setupRouter configures and returns the HTTP router
func setupRouter(deps *container.Container, h *handlers, authService *service.AuthService) *chi.Mux {
	cfg := deps.GetConfig()
	log := deps.GetLogger()

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Health check (no auth required)
	r.Get("/health", h.health.Check)

	r.Route("/api", func(r chi.Router) {
		// Attendee-facing feedback routes (no auth required)
		r.Route("/feedback", func(r chi.Router) {
			r.Get("/{link}", h.feedback.ResolveWorkshop)
			r.Post("/{link}/session", h.feedback.StartSession)

			r.Route("/session/{sessionID}", func(r chi.Router) {
				r.Get("/", h.feedback.GetSession)
				r.Put("/draft", h.feedback.UpdateDraft)
				r.Post("/advance", h.feedback.Advance)
				r.Post("/retreat", h.feedback.Retreat)
				r.Post("/verification/{channel}/request", h.feedback.RequestCode)
				r.Post("/verification/{channel}/submit", h.feedback.SubmitCode)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			// Auth endpoints (no token required)
			r.Post("/auth/register", h.auth.Register)
			r.Post("/auth/login", h.auth.Login)

			// Protected admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(authService, log))

				r.Route("/workshops", func(r chi.Router) {
					r.Get("/", h.workshop.List)
					r.Post("/", h.workshop.Create)
					r.Get("/{id}", h.workshop.Get)
					r.Put("/{id}", h.workshop.Update)
					r.Delete("/{id}", h.workshop.Delete)
					r.Post("/{id}/activate", h.workshop.Activate)
					r.Post("/{id}/deactivate", h.workshop.Deactivate)
					r.Get("/{id}/submissions", h.workshop.ListSubmissions)
				})

				r.Route("/templates", func(r chi.Router) {
					r.Get("/", h.template.List)
					r.Post("/", h.template.Create)
					r.Post("/{id}/activate", h.template.Activate)
					r.Delete("/{id}", h.template.Delete)
				})

				r.Get("/export", h.export.Export)
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
