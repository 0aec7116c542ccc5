package service

import (
	"crypto/tls"

	"github.com/bbqgrill/backend/internal/config"
	gomail "github.com/go-mail/mail"
)

// Sender delivers composed messages. *gomail.Dialer satisfies it; each call
// dials, sends and closes its own connection.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SenderFactory builds a Sender for one delivery.
type SenderFactory func(settings config.SMTPSettings) Sender

// NewSMTPSender builds a go-mail dialer from resolved settings. With SSL
// enabled, port 465 uses implicit TLS and every other port requires
// STARTTLS; with SSL disabled the session stays in plain text.
func NewSMTPSender(s config.SMTPSettings) Sender {
	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	d.Timeout = s.Timeout
	d.TLSConfig = &tls.Config{ServerName: s.Host}

	if s.EnableSSL {
		d.SSL = s.Port == 465
		if !d.SSL {
			d.StartTLSPolicy = gomail.MandatoryStartTLS
		}
	} else {
		d.SSL = false
		d.StartTLSPolicy = gomail.NoStartTLS
	}
	return d
}
