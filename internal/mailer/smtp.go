// Package mailer delivers login codes over SMTP. It is the out-of-band
// channel of the login flow: the code travels by email only, never in an API
// response.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrHostPortRequired is returned when Host or Port is missing.
var ErrHostPortRequired = errors.New("smtp host and port are required")

// Config configures the SMTP sender.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends login codes via net/smtp.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTP constructs an SMTP deliverer. Auth is enabled only when both
// username and password are set, so a local relay needs no credentials.
func NewSMTP(cfg Config) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTP{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: from,
		auth: auth,
	}, nil
}

// Deliver sends the one-time code to email.
func (s *SMTP) Deliver(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := []string{
		"From: " + s.from,
		"To: " + email,
		"Subject: Your login code",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	body := fmt.Sprintf("Your one-time login code is %s. It expires in 10 minutes.\r\nIf you did not request it, ignore this message.", code)
	raw := strings.Join(headers, "\r\n") + "\r\n\r\n" + body + "\r\n"

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{email}, []byte(raw)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogDeliverer writes the code to the process log instead of sending mail.
// Dev-only stand-in when no SMTP relay is configured.
type LogDeliverer struct {
	Logf func(format string, args ...any)
}

// Deliver logs the code.
func (d *LogDeliverer) Deliver(ctx context.Context, email, code string) error {
	if d.Logf != nil {
		d.Logf("otp for %s: %s", email, code)
	}
	return nil
}
