package service

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
)

// sendFunc delivers one message and reports the provider's HTTP status and body.
type sendFunc func(ctx context.Context, msg *mail.SGMailV3) (int, string, error)

type sendGridEmailService struct {
	fromEmail string
	fromName  string
	send      sendFunc
}

// NewSendGridEmailService returns a SendGrid-backed notifier. With an empty API key
// messages are only logged.
func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		return &logOnlyEmailService{}
	}
	client := sendgrid.NewSendClient(apiKey)
	return &sendGridEmailService{
		fromEmail: fromEmail,
		fromName:  fromName,
		send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			resp, err := client.SendWithContext(ctx, msg)
			if err != nil {
				return 0, "", err
			}
			return resp.StatusCode, resp.Body, nil
		},
	}
}

func (s *sendGridEmailService) SendCampaignStatusNotification(ctx context.Context, email, name, title string, status domain.CampaignStatus) error {
	subject := fmt.Sprintf("Your campaign \"%s\" was %s", title, status)
	plain := fmt.Sprintf("Hello %s,\n\nYour campaign \"%s\" has been reviewed and is now %s.", name, title, status)
	if status == domain.CampaignStatusVerified {
		plain += "\n\nIt is now visible to donors."
	}
	plain += "\n\nBest regards,\nThe KindnessConnect Team"
	return s.deliver(ctx, email, name, subject, plain)
}

func (s *sendGridEmailService) SendVerificationApprovedNotification(ctx context.Context, email, name string) error {
	subject := "Your account is now verified"
	plain := fmt.Sprintf("Hello %s,\n\nYour verification request was approved. Your campaigns now carry the verified badge.\n\nBest regards,\nThe KindnessConnect Team", name)
	return s.deliver(ctx, email, name, subject, plain)
}

func (s *sendGridEmailService) deliver(ctx context.Context, to, toName, subject, plain string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	htmlContent := "<p>" + html.EscapeString(plain) + "</p>"
	message := mail.NewSingleEmail(from, subject, recipient, plain, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	status, body, err := s.send(ctx, message)
	if err == nil && status >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", status, body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type logOnlyEmailService struct{}

func (logOnlyEmailService) SendCampaignStatusNotification(ctx context.Context, email, name, title string, status domain.CampaignStatus) error {
	logger.Info("Email disabled: campaign status notification", "to", email, "title", title, "status", status)
	return nil
}

func (logOnlyEmailService) SendVerificationApprovedNotification(ctx context.Context, email, name string) error {
	logger.Info("Email disabled: verification approved notification", "to", email)
	return nil
}
