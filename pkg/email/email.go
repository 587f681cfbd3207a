package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService sends transactional mail. All sends are best-effort:
// callers log failures and never propagate them into order processing.
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// OrderConfirmation carries the fields rendered into the confirmation mail.
type OrderConfirmation struct {
	OrderNumber  string
	CustomerName string
	Total        string
	VenueName    string
}

var confirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>{{.VenueName}}</h2>
    <p>Hi {{if .CustomerName}}{{.CustomerName}}{{else}}there{{end}},</p>
    <p>Thank you for your order <strong>{{.OrderNumber}}</strong>.</p>
    <p>Amount paid: <strong>{{.Total}}</strong></p>
    <p>Enjoy the show!</p>
  </body>
</html>
`))

// SendOrderConfirmation emails a payment confirmation for an order.
func (s *EmailService) SendOrderConfirmation(toEmail string, data OrderConfirmation) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render confirmation template: %w", err)
	}

	subject := fmt.Sprintf("Order %s confirmed - %s", data.OrderNumber, data.VenueName)
	message := s.buildHTMLEmail(toEmail, subject, body.String())

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return append([]byte(headers), []byte(htmlBody)...)
}
