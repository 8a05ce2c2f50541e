package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/store-scheduler/internal/config"
)

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers HTML mail through one SMTP relay. PLAIN auth is used
// when a user is configured.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	host := strings.TrimSpace(cfg.Host)
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = "no-reply@store-scheduler.local"
	}

	m := &SMTPMailer{
		addr: net.JoinHostPort(host, strings.TrimSpace(cfg.Port)),
		from: from,
	}
	if cfg.User != "" {
		m.auth = smtp.PlainAuth("", cfg.User, cfg.Password, host)
	}
	return m
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, buildMessage(m.from, msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg Message) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		msg.To,
		msg.Subject,
		msg.HTML,
	))
}

// LogMailer only logs; used when EMAIL_ENABLED is false.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email disabled, not sent")
	return nil
}

// NewMailer picks the SMTP mailer when email is enabled.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Enabled && cfg.Host != "" {
		return NewSMTPMailer(cfg)
	}
	return LogMailer{}
}
