package smtp

import (
	"fmt"
	"net/smtp"
	"strings"

	"newsdesk/notification-service/internal/app/notifications/config"
)

// Sender отправляет письма через SMTP сервер
type Sender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSender создает SMTP отправителя
// Без логина аутентификация не используется (локальный relay, mailhog)
func NewSender(cfg config.SMTPConfig) *Sender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Sender{
		addr: cfg.Address(),
		from: cfg.From,
		auth: auth,
	}
}

// Send отправляет письмо одному получателю
func (s *Sender) Send(recipient, subject, body string) error {
	msg := buildMessage(s.from, recipient, subject, body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
