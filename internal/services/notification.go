package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	appErrors "github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/shresthasriv/ecom-nexora/pkg/sendgrid"
)

const receiptCategory = "order-receipt"

var receiptHTML = template.Must(template.New("receipt").Parse(`<h2>Thank you for your order, {{.Customer.Name}}!</h2>
<p>Order <strong>{{.OrderNumber}}</strong> placed on {{.Timestamp.Format "2006-01-02 15:04 MST"}}.</p>
<table>
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Subtotal</th></tr>
{{range .Items}}<tr><td>{{.Title}}</td><td align="center">{{.Quantity}}</td><td align="right">${{.Price.StringFixed 2}}</td><td align="right">${{.Subtotal.StringFixed 2}}</td></tr>
{{end}}</table>
<p><strong>Total: ${{.Total.StringFixed 2}}</strong></p>`))

// ReceiptNotifier emails the order receipt to the customer.
type ReceiptNotifier struct {
	emailService sendgrid.EmailService
}

func NewReceiptNotifier(emailService sendgrid.EmailService) *ReceiptNotifier {
	return &ReceiptNotifier{emailService: emailService}
}

func (n *ReceiptNotifier) SendReceipt(ctx context.Context, receipt *models.OrderReceipt) error {

	var html strings.Builder
	if err := receiptHTML.Execute(&html, receipt); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	req := &sendgrid.Email{
		To:          receipt.Customer.Email,
		ToName:      receipt.Customer.Name,
		Subject:     fmt.Sprintf("Your order %s", receipt.OrderNumber),
		Content:     renderReceiptText(receipt),
		HTMLContent: html.String(),
		Categories:  []string{receiptCategory},
		CustomArgs:  map[string]string{"order_number": receipt.OrderNumber},
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		return appErrors.ThirdPartyError(fmt.Sprintf("Failed to send receipt for order %s", receipt.OrderNumber)).WithError(err)
	}

	return nil
}

func renderReceiptText(receipt *models.OrderReceipt) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your order, %s!\n\n", receipt.Customer.Name)
	fmt.Fprintf(&b, "Order number: %s\n", receipt.OrderNumber)
	fmt.Fprintf(&b, "Placed: %s\n\n", receipt.Timestamp.Format("2006-01-02 15:04 MST"))

	for _, item := range receipt.Items {
		fmt.Fprintf(&b, "%d x %s @ $%s = $%s\n", item.Quantity, item.Title, item.Price.StringFixed(2), item.Subtotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: $%s\n", receipt.Total.StringFixed(2))

	return b.String()
}
