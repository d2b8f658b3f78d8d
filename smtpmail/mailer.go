// Package smtpmail delivers reminder messages over SMTP.
package smtpmail

import (
	"context"
	"errors"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/mousuite/remind"
)

var (
	// ErrHostRequired is returned when no SMTP host is configured.
	ErrHostRequired = errors.New("smtpmail: host is required")
	// ErrFromRequired is returned when no sender address is configured.
	ErrFromRequired = errors.New("smtpmail: from address is required")
)

// Config defines the SMTP connection and sender identity.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends one plain-text message per call with all recipients on a
// single submission.
type Mailer struct {
	client *mail.Client
	from   string
}

var _ remind.Mailer = (*Mailer)(nil)

// New constructs an SMTP mailer. Plain authentication is used when a
// username is configured; TLS is opportunistic.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.From == "" {
		return nil, ErrFromRequired
	}

	opts := []mail.Option{
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtpmail: client setup failed: %w", err)
	}

	return &Mailer{client: client, from: cfg.From}, nil
}

// Send implements remind.Mailer.
func (m *Mailer) Send(ctx context.Context, recipients []string, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("smtpmail: invalid from address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("smtpmail: invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtpmail: send failed: %w", err)
	}

	return nil
}
