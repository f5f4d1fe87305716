package infra

import (
	"fmt"
	"net/smtp"

	"fernledger/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text operational mail (stock depletion alerts). Delivery
// runs on the worker pool, never on a request path.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) SendAlert(to, subject, body string) error {
	msg := email.NewEmail()
	msg.From = m.cfg.SMTPUser
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	return msg.Send(addr, auth)
}
