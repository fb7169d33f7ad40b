package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"gamerverse/pkg/logger"
)

// Sender delivers a single plain text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SendGridClient struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridClient(apiKey, from string) *SendGridClient {
	return &SendGridClient{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: "GamerVerse",
	}
}

func (c *SendGridClient) Send(ctx context.Context, to, subject, body string) error {
	if c.from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(c.fromName, c.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	resp, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
	}

	logger.Info("Mail sent: status=%d to=%s subject=%q", resp.StatusCode, to, subject)
	return nil
}

// LogSender stands in when no SendGrid key is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, _ string) error {
	logger.Info("Mail disabled, dropping message to=%s subject=%q", to, subject)
	return nil
}
