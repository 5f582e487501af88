package delivery

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"feedback-be/internal/domain"
)

// SendGridProvider delivers email verification codes via SendGrid.
type SendGridProvider struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *zap.Logger
}

func NewSendGridProvider(apiKey, fromAddr, fromName string, logger *zap.Logger) *SendGridProvider {
	return &SendGridProvider{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddr),
		logger: logger,
	}
}

func (p *SendGridProvider) Send(ctx context.Context, kind domain.ChannelKind, target, code string) error {
	if kind != domain.ChannelEmail {
		return domain.ErrInvalidChannel
	}

	subject := "Your verification code"
	body := fmt.Sprintf("Your workshop feedback verification code is %s. It expires in 10 minutes.", code)
	message := mail.NewSingleEmail(p.from, subject, mail.NewEmail("", target), body, "")

	resp, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		p.logger.Warn("sendgrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body))
		return fmt.Errorf("sendgrid send failed with status %d", resp.StatusCode)
	}

	return nil
}
