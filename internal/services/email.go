package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/dimitrije/signshop-api/internal/config"
	"github.com/dimitrije/signshop-api/internal/models"
)

var quoteNotificationTmpl = template.Must(template.New("quote").Parse(`
<html>
<body>
	<h2>New quote request</h2>
	<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;{{with .Company}} from {{.}}{{end}}</p>
	{{with .Phone}}<p>Phone: {{.}}</p>{{end}}
	{{with .Product}}<p>Product: {{.}}</p>{{end}}
	{{with .TemplateID}}<p>Template: {{.}}</p>{{end}}
	<p>{{.Message}}</p>
</body>
</html>
`))

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Send delivers an HTML message. It is a no-op when SMTP is not configured.
func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() || to == "" {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func renderQuoteNotification(q *models.QuoteRequest) (string, error) {
	var buf bytes.Buffer
	if err := quoteNotificationTmpl.Execute(&buf, q); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendQuoteNotification tells the sales inbox about a new quote request.
func (s *EmailService) SendQuoteNotification(to string, q *models.QuoteRequest) error {
	body, err := renderQuoteNotification(q)
	if err != nil {
		return fmt.Errorf("failed to render quote email: %w", err)
	}
	return s.Send(to, fmt.Sprintf("Quote request from %s", q.Name), body)
}
