// backend/src/services/email_service.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/meridian-capital/appraisal/backend/src/config"
	"github.com/meridian-capital/appraisal/backend/src/logger"
)

type smtpEmailService struct{}

func NewEmailService() EmailService {
	return &smtpEmailService{}
}

func (s *smtpEmailService) SendVerificationEmail(toEmail, username, token string) error {
	link := fmt.Sprintf("%s?token=%s", config.Cfg.VerificationEmailBaseURL, token)
	subject := "Confirm your account"
	body := fmt.Sprintf("Hi %s,\n\nConfirm your account by visiting:\n%s\n", username, link)
	return s.send(toEmail, subject, body)
}

func (s *smtpEmailService) SendPasswordResetEmail(toEmail, username, token string) error {
	link := fmt.Sprintf("%s?token=%s", config.Cfg.PasswordResetBaseURL, token)
	subject := "Reset your password"
	body := fmt.Sprintf("Hi %s,\n\nReset your password by visiting:\n%s\n", username, link)
	return s.send(toEmail, subject, body)
}

func (s *smtpEmailService) send(toEmail, subject, body string) error {
	if config.Cfg.SMTPServer == "" {
		logger.L.Warn("SMTP server not configured, skipping email dispatch", "to", toEmail, "subject", subject)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", config.Cfg.SMTPServer, config.Cfg.SMTPPort)
	auth := smtp.PlainAuth("", config.Cfg.SMTPUser, config.Cfg.SMTPPassword, config.Cfg.SMTPServer)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		config.Cfg.SenderName, config.Cfg.SenderEmail, toEmail, subject, body))

	if err := smtp.SendMail(addr, auth, config.Cfg.SenderEmail, []string{toEmail}, msg); err != nil {
		logger.L.Error("Failed to send email", "to", toEmail, "error", err)
		return err
	}
	return nil
}
