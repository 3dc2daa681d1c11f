package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
	apperrors "github.com/ZanzyTHEbar/project-risk-radar/internal/errors"
)

// SMTPMailer dispatches HTML mail over SMTP with STARTTLS.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer builds a mailer from SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message. Missing credentials are a configuration
// error, not a silent no-op.
func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	if !m.cfg.Configured() {
		return apperrors.NewConfigurationError("email credentials not configured", nil)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, []byte(msg.String())); err != nil {
		return apperrors.NewExternalAPIError("smtp", err)
	}
	return nil
}
