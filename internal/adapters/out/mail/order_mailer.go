// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"log"
	"strings"

	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
)

// EmailClient abstracts the mail transport (SendGrid in production).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer sends the order confirmation after a completed checkout.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
}

func NewOrderMailer(client EmailClient, fromAddress string) *OrderMailer {
	return &OrderMailer{client: client, fromAddress: strings.TrimSpace(fromAddress)}
}

// NewOrderMailerWithSendGrid returns nil when apiKey is empty (mail disabled).
func NewOrderMailerWithSendGrid(apiKey, fromAddress string) *OrderMailer {
	if strings.TrimSpace(apiKey) == "" {
		log.Printf("[mail] SENDGRID_API_KEY is empty; order confirmation mail disabled")
		return nil
	}
	log.Printf("[mail] OrderMailer initialized. from=%s", fromAddress)
	return NewOrderMailer(NewSendGridClient(apiKey), fromAddress)
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order) error {
	subject := fmt.Sprintf("Your LackLink order %s", shortID(o.ID))
	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(toEmail), subject, confirmationBody(o))
}

func confirmationBody(o orderdom.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order.\n\nOrder: %s\n\n", o.ID)
	for _, l := range o.Items {
		fmt.Fprintf(&b, "  %d x %s  @ %s\n", l.Quantity, l.ProductName, l.Price.StringFixed(2))
	}
	a := o.ShippingAddress
	fmt.Fprintf(&b, "\nTotal: %s\nPayment: %s\n\nShip to:\n  %s\n  %s\n", o.TotalAmount.StringFixed(2), o.PaymentMethod, a.Name, a.AddressLine1)
	if a.AddressLine2 != "" {
		fmt.Fprintf(&b, "  %s\n", a.AddressLine2)
	}
	fmt.Fprintf(&b, "  %s, %s %s\n  %s\n\n-- \nLackLink", a.City, a.State, a.PostalCode, a.Country)
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
