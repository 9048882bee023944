package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendPasswordResetEmail(email, token string) error
	SendVerificationEmail(email, token string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
	log    *zap.SugaredLogger
}

// NewEmailService builds the SMTP-backed sender. With dryRun set the
// service logs instead of dialing, which is how local and CI
// environments run.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool, log *zap.SugaredLogger) EmailService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		dryRun: dryRun,
		log:    log,
	}
}

func (s *emailService) send(to, subject, body string) error {
	if s.dryRun {
		s.log.Infow("dry-run email", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(email, token string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following token to reset your password: <strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, token)
	return s.send(email, "Password reset request", body)
}

func (s *emailService) SendVerificationEmail(email, token string) error {
	body := fmt.Sprintf(`
		<h3>Verify your email address</h3>
		<p>Use the following token to confirm this email address: <strong>%s</strong></p>
		<p>The token expires in 24 hours.</p>
	`, token)
	return s.send(email, "Confirm your email address", body)
}
