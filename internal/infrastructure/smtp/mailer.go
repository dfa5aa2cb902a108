// Package smtp is the Notifier: it delivers one-time codes to the user's
// mailbox. It is constructed once and injected, never reached through global
// state, so tests can substitute a fake.
package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/canopy-api/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	// Configured reports whether delivery credentials are present. Callers
	// decide how to degrade when they are not (relaxed vs strict mode).
	Configured() bool
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) Configured() bool {
	return m.username != "" && m.password != ""
}

// SendEmail submits the message over STARTTLS. The port must be a submission
// port (587); smtp.SendMail does not speak implicit TLS (465).
func (m *mailer) SendEmail(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp credentials not configured")
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
