// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/baankanom/bakery-backend/internal/config"
	"github.com/baankanom/bakery-backend/internal/domain/order"
	"github.com/baankanom/bakery-backend/internal/domain/pricing"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for an order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptDate: time.Now().Format("January 2, 2006"),
		Order:       o,
		Shop: shopInfo{
			Name:    s.config.App.ShopName,
			Address: s.config.App.ShopAddress,
			Phone:   s.config.App.ShopPhone,
			Email:   s.config.App.ShopEmail,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

type shopInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type receiptData struct {
	ReceiptDate string
	Order       *order.Order
	Shop        shopInfo
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"baht": pricing.FormatBaht,
		"lineTotal": func(i order.OrderItem) string {
			return pricing.FormatBaht(i.LineTotal())
		},
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
