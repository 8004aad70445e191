package infrastructure

// EmailSender отправляет письмо получателю
type EmailSender interface {
	Send(recipient, subject, body string) error
}
