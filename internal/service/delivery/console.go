package delivery

import (
	"context"

	"go.uber.org/zap"

	"feedback-be/internal/domain"
)

// ConsoleProvider logs codes instead of sending them. It stands in for a
// real gateway in development and tests.
type ConsoleProvider struct {
	logger *zap.Logger
}

func NewConsoleProvider(logger *zap.Logger) *ConsoleProvider {
	return &ConsoleProvider{logger: logger}
}

func (p *ConsoleProvider) Send(_ context.Context, kind domain.ChannelKind, target, code string) error {
	p.logger.Info("verification code issued",
		zap.String("channel", string(kind)),
		zap.String("target", target),
		zap.String("code", code))
	return nil
}
