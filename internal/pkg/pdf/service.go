// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
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

// GenerateReceipt renders an order receipt as PDF for the merchant dashboard.
func (s *Service) GenerateReceipt(st *store.Store, o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		Store:       st,
		Order:       o,
		IssuedAt:    time.Now().Format("02/01/2006 15:04"),
		TypeLabel:   typeLabel(o.Type),
		Subtotal:    "R$ " + pricing.ToDisplay(o.Subtotal),
		DeliveryFee: "R$ " + pricing.ToDisplay(o.DeliveryFee),
		Total:       "R$ " + pricing.ToDisplay(o.Total),
		Notes:       strings.Split(o.Notes, "\n"),
	}
	for i := range o.Items {
		item := &o.Items[i]
		data.Items = append(data.Items, receiptItem{
			Quantity: item.Quantity,
			Name:     item.Name,
			Total:    "R$ " + pricing.ToDisplay(item.Total),
		})
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

func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func typeLabel(t order.OrderType) string {
	if t == order.OrderTypePickup {
		return "Retirada"
	}
	return "Entrega"
}

// receiptData is the data passed to the receipt template
type receiptData struct {
	Store       *store.Store
	Order       *order.Order
	Items       []receiptItem
	IssuedAt    string
	TypeLabel   string
	Subtotal    string
	DeliveryFee string
	Total       string
	Notes       []string
}

type receiptItem struct {
	Quantity int
	Name     string
	Total    string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Pedido {{.Order.OrderNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 16px; margin-bottom: 24px; }
        .store-name { font-size: 24px; font-weight: bold; }
        .order-number { font-size: 16px; color: #666; margin-top: 4px; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
        th { text-align: left; border-bottom: 1px solid #ccc; padding: 8px 4px; }
        td { padding: 8px 4px; border-bottom: 1px solid #eee; }
        .totals { text-align: right; }
        .totals .grand { font-size: 18px; font-weight: bold; }
        .notes { margin-top: 24px; font-size: 13px; color: #555; white-space: pre-line; }
    </style>
</head>
<body>
    <div class="header">
        <div class="store-name">{{.Store.Name}}</div>
        <div class="order-number">Pedido {{.Order.OrderNumber}} &middot; {{.TypeLabel}} &middot; {{.IssuedAt}}</div>
    </div>
    <table>
        <thead>
            <tr><th>Qtd</th><th>Item</th><th style="text-align:right">Total</th></tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr><td>{{.Quantity}}x</td><td>{{.Name}}</td><td style="text-align:right">{{.Total}}</td></tr>
            {{end}}
        </tbody>
    </table>
    <div class="totals">
        <div>Subtotal: {{.Subtotal}}</div>
        <div>Taxa de entrega: {{.DeliveryFee}}</div>
        <div class="grand">Total: {{.Total}}</div>
    </div>
    <div class="notes">
        {{range .Notes}}{{.}}
        {{end}}
    </div>
</body>
</html>
`
