package mail

import (
	"crypto/tls"

	gomail "github.com/go-mail/mail"
	"github.com/rs/zerolog"

	"atelier/api/internal/config"
)

// Sender delivers a notification. Implementations never fail the caller:
// they report delivery as a boolean and keep the details in their own
// logs. State changes must already be committed before Send is called.
type Sender interface {
	Send(to, subject, textBody, htmlBody string) bool
}

type SMTPSender struct {
	cfg config.SMTPConfig
	log zerolog.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, log zerolog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log}
}

func (s *SMTPSender) Send(to, subject, textBody, htmlBody string) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	if textBody != "" {
		m.SetBody("text/plain", textBody)
	}
	if htmlBody != "" {
		if textBody == "" {
			m.SetBody("text/html", htmlBody)
		} else {
			m.AddAlternative("text/html", htmlBody)
		}
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.Insecure,
	}

	if err := d.DialAndSend(m); err != nil {
		s.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("smtp send failed")
		return false
	}

	s.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return true
}
