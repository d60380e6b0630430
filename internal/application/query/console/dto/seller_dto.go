// internal/application/query/console/dto/seller_dto.go
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	paymentdom "github.com/UDAY2232/LackLink/internal/domain/payment"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
)

// SellerDashboardDTO is computed over the retailer's own products only.
type SellerDashboardDTO struct {
	ProductCount    int             `json:"product_count"`
	OrderLineCount  int             `json:"order_line_count"`
	Revenue         decimal.Decimal `json:"revenue"`
	UniqueCustomers int             `json:"unique_customers"`
}

type SellerOrderLineDTO struct {
	orderitemdom.OrderItem

	ProductName string `json:"product_name"`
}

// SellerOrderDTO is one order as seen by a retailer: only the lines of its own products.
type SellerOrderDTO struct {
	OrderID         string            `json:"order_id"`
	CustomerID      string            `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	Status          orderdom.Status   `json:"status"`
	PaymentStatus   paymentdom.Status `json:"payment_status"`
	ShippingAddress shipdom.Address   `json:"shipping_address"`
	CreatedAt       time.Time         `json:"created_at"`

	Lines    []SellerOrderLineDTO `json:"lines"`
	Subtotal decimal.Decimal      `json:"subtotal"`
}
