package mail

import (
	"context"
	"fmt"

	"chambers/models"
	"chambers/utils"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer delivers contact form enquiries to the firm's inbox.
type Mailer interface {
	SendContactMessage(ctx context.Context, msg models.ContactMessage) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendMailer returns a Mailer over the Resend API.
func NewResendMailer(apiKey, from, to string) (*ResendMailer, error) {
	if apiKey == "" || from == "" || to == "" {
		return nil, fmt.Errorf("mail credentials not set in configuration")
	}
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}, nil
}

func (m *ResendMailer) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Website enquiry"
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		ReplyTo: msg.Email,
		Subject: subject,
		Text:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send contact message: %w", err)
	}
	return nil
}

// LogMailer logs instead of sending. Used in development and tests.
type LogMailer struct{}

func (LogMailer) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	utils.GetLogger().Info("contact message (mail disabled)",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject))
	return nil
}
