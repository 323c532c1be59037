package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventrsvp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventReminder sends the event reminder email using the "reminder" template.
// One invocation is exactly one delivery attempt; there is no retry.
func (s *emailService) SendEventReminder(ctx context.Context, data *domain.EventReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("event reminder data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render reminder template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	s.logger.Info("reminder email sent", "to", data.Email, "event", data.Title)
	return nil
}
