// Package mailer defines the outbound-mail collaborator for the reset flow.
// SMTP transport is out of scope; production deployments plug in their own
// implementation behind the Mailer interface.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
)

// Mailer delivers a password-reset token to the account's e-mail address.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}

// LogMailer writes the reset link to the application log instead of sending
// mail. Suitable for development and tests only.
type LogMailer struct {
	logger  *slog.Logger
	baseURL string
}

// NewLogMailer returns a LogMailer composing links against baseURL.
func NewLogMailer(logger *slog.Logger, baseURL string) *LogMailer {
	return &LogMailer{logger: logger, baseURL: baseURL}
}

// SendPasswordReset logs the reset link. It never fails.
func (m *LogMailer) SendPasswordReset(ctx context.Context, email, resetToken string) error {
	link := fmt.Sprintf("%s/api/auth/reset-confirm/%s", m.baseURL, resetToken)
	m.logger.InfoContext(ctx, "password reset requested",
		slog.String("email", email),
		slog.String("reset_link", link),
	)
	return nil
}
