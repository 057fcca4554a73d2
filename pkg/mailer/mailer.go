package mailer

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("mailer not configured")

// Sender delivers outbound email.
type Sender interface {
	Send(ctx context.Context, to []string, subject, html, text string) (string, error)
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResend(apiKey, from string) *ResendMailer {
	if apiKey == "" {
		return &ResendMailer{from: from}
	}
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

// Send delivers one email and returns the provider message id.
func (m *ResendMailer) Send(ctx context.Context, to []string, subject, html, text string) (string, error) {
	if m.client == nil {
		return "", ErrNotConfigured
	}
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
