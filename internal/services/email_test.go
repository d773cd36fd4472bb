package services

import (
	"testing"

	"github.com/dimitrije/signshop-api/internal/config"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_IsConfigured(t *testing.T) {
	full := config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "quotes@signshop.test",
		Password: "password",
		From:     "noreply@signshop.test",
	}

	tests := []struct {
		name  string
		strip func(*config.SMTPConfig)
		want  bool
	}{
		{"complete", func(*config.SMTPConfig) {}, true},
		{"no host", func(c *config.SMTPConfig) { c.Host = "" }, false},
		{"no username", func(c *config.SMTPConfig) { c.Username = "" }, false},
		{"no password", func(c *config.SMTPConfig) { c.Password = "" }, false},
		{"no sender", func(c *config.SMTPConfig) { c.From = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.strip(&cfg)
			assert.Equal(t, tt.want, NewEmailService(cfg).IsConfigured())
		})
	}
}

func TestEmailService_Send_NotConfigured(t *testing.T) {
	cfg := config.SMTPConfig{}
	svc := NewEmailService(cfg)

	err := svc.Send("to@example.com", "Subject", "Body")

	assert.NoError(t, err)
}

func TestEmailService_Send_NoRecipient(t *testing.T) {
	svc := NewEmailService(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "user@example.com",
		Password: "password",
		From:     "noreply@example.com",
	})

	assert.NoError(t, svc.Send("", "Subject", "Body"))
}

func TestEmailService_SendQuoteNotification_NotConfigured(t *testing.T) {
	svc := NewEmailService(config.SMTPConfig{})

	err := svc.SendQuoteNotification("sales@example.com", &models.QuoteRequest{Name: "Ana", Message: "Need a sign"})

	assert.NoError(t, err)
}

func TestRenderQuoteNotification_EscapesInput(t *testing.T) {
	company := "Acme <Signs>"
	body, err := renderQuoteNotification(&models.QuoteRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Company: &company,
		Message: "<script>alert(1)</script>",
	})

	require.NoError(t, err)
	assert.Contains(t, body, "Acme &lt;Signs&gt;")
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "Phone:")
}
