package email

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/beetdev/recipe-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether SMTP is configured.
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != ""
}

// SendWelcome sends a welcome email to a newly registered user.
func (s *Sender) SendWelcome(to, name string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Welcome to the Recipe Service"

	if name == "" {
		name = to
	}
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your account has been created.\n"+
			"You can now log in and start saving your recipes.\n\n"+
			"Best regards,\nRecipe Service",
		name,
	)
	e.Text = []byte(body)

	addr := net.JoinHostPort(s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	s.logger.Infof("Welcome email sent to %s", to)
	return nil
}
