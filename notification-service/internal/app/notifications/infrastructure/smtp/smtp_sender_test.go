package smtp

import (
	"strings"
	"testing"

	"newsdesk/notification-service/internal/app/notifications/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage_Headers(t *testing.T) {
	msg := string(buildMessage("noreply@newsdesk.local", "author@example.com", "Review decision", "Your post was approved."))

	assert.Contains(t, msg, "From: noreply@newsdesk.local\r\n")
	assert.Contains(t, msg, "To: author@example.com\r\n")
	assert.Contains(t, msg, "Subject: Review decision\r\n")
	assert.Contains(t, msg, "charset=\"utf-8\"")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nYour post was approved."))
}

func TestNewSender_NoAuthWithoutUsername(t *testing.T) {
	sender := NewSender(config.SMTPConfig{
		Host: "localhost",
		Port: "1025",
		From: "noreply@newsdesk.local",
	})

	assert.Nil(t, sender.auth)
	assert.Equal(t, "localhost:1025", sender.addr)
}

func TestNewSender_AuthWithUsername(t *testing.T) {
	sender := NewSender(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "mailer",
		Password: "secret",
		From:     "noreply@newsdesk.local",
	})

	assert.NotNil(t, sender.auth)
}
