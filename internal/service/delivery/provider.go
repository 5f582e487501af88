// Package delivery sends one-time verification codes out of band.
package delivery

import (
	"context"

	"feedback-be/internal/domain"
)

// Provider delivers a one-time code to a contact target. Code generation and
// comparison stay with the caller; a provider only transports.
type Provider interface {
	Send(ctx context.Context, kind domain.ChannelKind, target, code string) error
}

// Composite routes each channel kind to its own provider.
type Composite struct {
	SMS   Provider
	Email Provider
}

func (c *Composite) Send(ctx context.Context, kind domain.ChannelKind, target, code string) error {
	switch kind {
	case domain.ChannelPhone:
		return c.SMS.Send(ctx, kind, target, code)
	case domain.ChannelEmail:
		return c.Email.Send(ctx, kind, target, code)
	}
	return domain.ErrInvalidChannel
}
