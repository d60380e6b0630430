// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	paymentdom "github.com/UDAY2232/LackLink/internal/domain/payment"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
)

// ========================================
// Status
// ========================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// ========================================
// Workflow state (persisted step completion of order placement)
// ========================================

type WorkflowState string

const (
	WorkflowCreated          WorkflowState = "created"
	WorkflowItemsRecorded    WorkflowState = "items_recorded"
	WorkflowStockDecremented WorkflowState = "stock_decremented"
	WorkflowCartCleared      WorkflowState = "cart_cleared"
	WorkflowCompleted        WorkflowState = "completed"
	WorkflowFailed           WorkflowState = "failed"
)

// Terminal reports whether no further step will run.
func (s WorkflowState) Terminal() bool {
	return s == WorkflowCompleted || s == WorkflowFailed
}

// PendingWorkflowStates are the states a crashed placement can stop in.
var PendingWorkflowStates = []WorkflowState{
	WorkflowCreated,
	WorkflowItemsRecorded,
	WorkflowStockDecremented,
	WorkflowCartCleared,
}

// ========================================
// Entity
// ========================================

// Line is the per-product snapshot captured when the order row is created.
// Price is discount_price ?? price at that instant.
type Line struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Order struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          Status            `json:"status"`
	ShippingAddress shipdom.Address   `json:"shipping_address"`
	PaymentMethod   paymentdom.Method `json:"payment_method"`
	PaymentStatus   paymentdom.Status `json:"payment_status"`
	Items           []Line            `json:"items"`
	WorkflowState   WorkflowState     `json:"workflow_state"`
	StockApplied    int               `json:"stock_applied"`
	FailureReason   string            `json:"failure_reason,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Errors
var (
	ErrNotFound      = fmt.Errorf("order: %w", common.ErrNotFound)
	ErrConflict      = fmt.Errorf("order: %w", common.ErrConflict)
	ErrCheckoutBusy  = fmt.Errorf("order: checkout already in progress: %w", common.ErrConflict)
	ErrInvalidStatus = common.NewValidationError("status", "status must be one of pending, confirmed, shipped, delivered, cancelled")
	ErrEmptyOrder    = common.NewValidationError("items", "order has no items")
	ErrInvalidLine   = common.NewValidationError("items", "order line needs a product and quantity >= 1")
	ErrInvalidUserID = common.NewValidationError("user_id", "user id is required")
)

// New builds a pending order in workflow state "created".
func New(
	id, userID string,
	lines []Line,
	addr shipdom.Address,
	method paymentdom.Method,
	payStatus paymentdom.Status,
	total decimal.Decimal,
	now time.Time,
) (Order, error) {
	if strings.TrimSpace(userID) == "" {
		return Order{}, ErrInvalidUserID
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyOrder
	}
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" || l.Quantity < 1 {
			return Order{}, ErrInvalidLine
		}
	}
	addr = addr.Normalize()
	if err := addr.Validate(); err != nil {
		return Order{}, err
	}

	now = now.UTC()
	return Order{
		ID:              strings.TrimSpace(id),
		UserID:          strings.TrimSpace(userID),
		TotalAmount:     total,
		Status:          StatusPending,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentStatus:   payStatus,
		Items:           append([]Line(nil), lines...),
		WorkflowState:   WorkflowCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Progress is the workflow bookkeeping written after each step.
type Progress struct {
	State         WorkflowState
	StockApplied  int
	Status        *Status
	PaymentStatus *paymentdom.Status
	FailureReason string
	UpdatedAt     time.Time
}

// ApplyTo mutates o in place.
func (p Progress) ApplyTo(o *Order) {
	o.WorkflowState = p.State
	o.StockApplied = p.StockApplied
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		o.PaymentStatus = *p.PaymentStatus
	}
	if p.FailureReason != "" {
		o.FailureReason = p.FailureReason
	}
	if !p.UpdatedAt.IsZero() {
		o.UpdatedAt = p.UpdatedAt.UTC()
	}
}

// OrdersTableDDL defines the PostgreSQL DDL for orders.
const OrdersTableDDL = `
CREATE TABLE IF NOT EXISTS orders (
  id                TEXT          PRIMARY KEY,
  user_id           TEXT          NOT NULL REFERENCES users(id),
  total_amount      NUMERIC(12,2) NOT NULL,
  status            TEXT          NOT NULL DEFAULT 'pending'
                    CHECK (status IN ('pending','confirmed','shipped','delivered','cancelled')),
  shipping_address  JSONB         NOT NULL,
  payment_method    TEXT          NOT NULL,
  payment_status    TEXT          NOT NULL DEFAULT 'pending'
                    CHECK (payment_status IN ('pending','completed','failed')),
  items             JSONB         NOT NULL DEFAULT '[]'::jsonb,
  workflow_state    TEXT          NOT NULL DEFAULT 'created',
  stock_applied     INTEGER       NOT NULL DEFAULT 0,
  failure_reason    TEXT          NOT NULL DEFAULT '',
  created_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
  updated_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_workflow ON orders(workflow_state)
  WHERE workflow_state NOT IN ('completed','failed');
`
