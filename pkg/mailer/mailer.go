package mailer

import (
	"gopkg.in/gomail.v2"

	"tramite-system/pkg/config"
)

// Message es el mensaje que el resto del sistema entrega al transporte de
// correo, sin conocer detalles de SMTP.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer se inyecta en los servicios para poder sustituirlo en tests
// sin depender de un servidor de correo real.
type Mailer interface {
	Send(msg Message) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.MailConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *smtpMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", msg.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return m.dialer.DialAndSend(gm)
}
