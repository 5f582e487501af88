package container

import (
	"feedback-be/internal/config"
	"feedback-be/internal/service/delivery"
	"feedback-be/pkg/logger"
	"feedback-be/pkg/redis"
)

// Container holds shared application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Delivery    delivery.Provider
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Redis client initialized successfully")

	// SMS delivery has no external provider wired yet; codes for the phone
	// channel are logged. Email goes through SendGrid when a key is set.
	var emailProvider delivery.Provider
	if cfg.SendGridAPIKey != "" {
		emailProvider = delivery.NewSendGridProvider(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName, logger.Logger)
		logger.Info("SendGrid email delivery initialized")
	} else {
		emailProvider = delivery.NewConsoleProvider(logger.Logger)
		logger.Warn("SENDGRID_API_KEY not set, verification emails will be logged instead of sent")
	}

	provider := &delivery.Composite{
		SMS:   delivery.NewConsoleProvider(logger.Logger),
		Email: emailProvider,
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Delivery:    provider,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// GetDeliveryProvider returns the verification code delivery provider
func (c *Container) GetDeliveryProvider() delivery.Provider {
	return c.Delivery
}
