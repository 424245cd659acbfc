// Package mailer sends transactional email over SMTP.
package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer is the send contract services depend on; tests swap in a stub.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP sends mail through a gomail dialer. One attempt per message, no
// retry; callers treat failures as best-effort.
type SMTP struct {
	host     string
	port     int
	sender   string
	username string
	password string
}

func NewSMTP(host string, port int, sender, username, password string) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		sender:   sender,
		username: username,
		password: password,
	}
}

func (s *SMTP) Send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return dialer.DialAndSend(message)
}
