// internal/domain/payment/entity.go
package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// Method is the payment method chosen at checkout.
type Method string

const (
	MethodCard           Method = "card"
	MethodPayPal         Method = "paypal"
	MethodCashOnDelivery Method = "cash_on_delivery"
)

// DefaultMethod is preselected on the checkout form.
const DefaultMethod = MethodCard

// Status mirrors orders.payment_status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var ErrInvalidMethod = common.NewValidationError("payment_method", "unknown payment method")

// ParseMethod normalizes s. Empty means DefaultMethod.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "":
		return DefaultMethod, nil
	case MethodCard, MethodPayPal, MethodCashOnDelivery:
		return m, nil
	}
	return "", ErrInvalidMethod
}

// Processor charges an order.
type Processor interface {
	Charge(ctx context.Context, orderID string, method Method, amount decimal.Decimal) (Status, error)
}

// SimulatedProcessor approves every charge. No money moves.
type SimulatedProcessor struct{}

func (SimulatedProcessor) Charge(_ context.Context, _ string, _ Method, _ decimal.Decimal) (Status, error) {
	return StatusCompleted, nil
}
