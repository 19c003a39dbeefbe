// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/baankanom/bakery-backend/internal/config"
	"github.com/baankanom/bakery-backend/internal/domain/order"
	"github.com/baankanom/bakery-backend/internal/domain/pricing"
)

// Email is an outbound message
type Email struct {
	To          []string
	Subject     string
	HTMLContent string
}

// Service sends transactional email over SMTP
type Service struct {
	config *config.Config
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Send delivers an email through the configured SMTP server
func (s *Service) Send(email *Email) error {
	cfg := s.config.Email
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)

	serverAddr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	return smtp.SendMail(serverAddr, auth, cfg.FromEmail, email.To, msg.Bytes())
}

// SendOrderConfirmation emails the shopper after a successful submission
func (s *Service) SendOrderConfirmation(to string, o *order.Order) error {
	tmpl := template.Must(template.New("confirmation").Funcs(template.FuncMap{
		"baht": pricing.FormatBaht,
	}).Parse(confirmationTemplate))

	var body bytes.Buffer
	data := struct {
		ShopName string
		Order    *order.Order
	}{
		ShopName: s.config.App.ShopName,
		Order:    o,
	}
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return s.Send(&Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("We received your order %s", o.OrderNumber),
		HTMLContent: body.String(),
	})
}

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #8b5e3c;">{{.ShopName}}</h2>
  <p>Thank you! Your order <strong>{{.Order.OrderNumber}}</strong> has been received
  and is waiting for payment confirmation.</p>

  <table style="border-collapse: collapse;">
    {{range .Order.Items}}
    <tr>
      <td style="padding: 4px 12px 4px 0;">{{.ProductName}} × {{.Quantity}}</td>
      <td style="padding: 4px 0; text-align: right;">{{baht .LineTotal}}</td>
    </tr>
    {{end}}
    <tr>
      <td style="padding: 8px 12px 0 0; font-weight: bold;">Total</td>
      <td style="padding: 8px 0 0; text-align: right; font-weight: bold;">{{baht .Order.Total}}</td>
    </tr>
  </table>

  <p>We will deliver to {{.Order.RecipientName}}, {{.Order.Address}}.</p>
  <p style="color: #888; font-size: 12px;">You will get another email once payment is confirmed.</p>
</body>
</html>`
