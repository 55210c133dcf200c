package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("likedigest/lib/mailer")

type SmtpConfig struct {
	Server   string   `json:"server"`
	Port     int      `json:"port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
}

func (c SmtpConfig) Validate() error {
	var missing []string
	if c.Server == "" {
		missing = append(missing, "smtp.server (SMTP_HOST)")
	}
	if c.Port <= 0 {
		missing = append(missing, "smtp.port (SMTP_PORT)")
	}
	if c.From == "" {
		missing = append(missing, "smtp.from (EMAIL_FROM)")
	}
	if len(c.To) == 0 {
		missing = append(missing, "smtp.to (EMAIL_TO)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing mail settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

type Mailer struct {
	config SmtpConfig
}

func NewMailer(config SmtpConfig) Mailer {
	return Mailer{config: config}
}

func (m Mailer) addr() string {
	return fmt.Sprintf("%s:%d", m.config.Server, m.config.Port)
}

func (m Mailer) message(subject, htmlBody string) *email.Email {
	mail := email.NewEmail()
	mail.From = m.config.From
	mail.To = m.config.To
	mail.Subject = subject
	mail.HTML = []byte(htmlBody)
	return mail
}

// Send delivers an html message, STARTTLS is negotiated by net/smtp when the
// server offers it.
func (m Mailer) Send(ctx context.Context, subject, htmlBody string) error {
	ctx, span := tracer.Start(ctx, "Send")
	defer span.End()
	span.SetAttributes(attribute.String("subject", subject))

	if err := ctx.Err(); err != nil {
		return err
	}

	mail := m.message(subject, htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Server)
	}
	err := mail.Send(m.addr(), auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		slog.WarnContext(ctx, "smtp server does not support AUTH, retrying without it", "server", m.config.Server)
		err = mail.Send(m.addr(), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return errors.Join(fmt.Errorf("send email via %s", m.addr()), err)
	}

	slog.InfoContext(ctx, "email sent", "subject", subject, "to", strings.Join(m.config.To, ","))
	return nil
}
