package mailer

import (
	"fmt"
	"html"

	"ai-tutor-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, fullName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

// NewEmailService returns a no-op mailer when host is empty.
func NewEmailService(host string, port int, username, password, senderName string, log logger.ILogger) IEmailService {
	if host == "" {
		return noopEmailService{logger: log}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) SendWelcome(toEmail, fullName string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to "+s.senderName)
	m.SetBody("text/html", welcomeBody(fullName))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	s.logger.Info("MAILER", "Welcome email sent", map[string]interface{}{"to": toEmail})
	return nil
}

func welcomeBody(fullName string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your tutor is ready. Ask questions in English or Bangla and your conversations are saved for later.</p>
			<p>স্বাগতম! আপনার টিউটর প্রস্তুত।</p>
		</div>
	`, html.EscapeString(fullName))
}

type noopEmailService struct {
	logger logger.ILogger
}

func (n noopEmailService) SendWelcome(toEmail, fullName string) error {
	n.logger.Debug("MAILER", "SMTP not configured, skipping welcome email", map[string]interface{}{"to": toEmail})
	return nil
}
