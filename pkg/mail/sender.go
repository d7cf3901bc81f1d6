package mail

import (
	"gopkg.in/mail.v2"
)

// Sender delivers a plaintext message to one or more recipients.
type Sender interface {
	SendMail(to []string, subject, textBody string) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type sender struct {
	from   string
	dialer Dialer
}

func (s *sender) SendMail(to []string, subject, textBody string) error {
	m := mail.NewMessage()

	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	return nil
}

// NewSender builds a Sender over an SMTP dialer for host:port. The dialer
// negotiates STARTTLS when the server advertises it and authenticates with
// the given credentials.
func NewSender(from, username, password, host string, port int) Sender {
	return &sender{
		from:   from,
		dialer: mail.NewDialer(host, port, username, password),
	}
}
