// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// CartItem is one persisted cart line.
// (user_id, product_id) is unique: adding an existing product bumps Quantity.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	// Product is the expanded snapshot; nil when the product row is gone.
	Product *productdom.Product `json:"product,omitempty"`
}

// Errors
var (
	ErrNotFound        = fmt.Errorf("cart: item %w", common.ErrNotFound)
	ErrConflict        = fmt.Errorf("cart: item %w", common.ErrConflict)
	ErrInvalidItem     = common.NewValidationError("cart_item", "user, product and id are required")
	ErrInvalidQuantity = common.NewValidationError("quantity", "quantity must be >= 1")
)

// NewCartItem validates and builds a line.
func NewCartItem(id, userID, productID string, qty int, now time.Time) (CartItem, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if id == "" || userID == "" || productID == "" {
		return CartItem{}, ErrInvalidItem
	}
	if qty < 1 {
		return CartItem{}, ErrInvalidQuantity
	}
	return CartItem{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: now.UTC(),
	}, nil
}

// UnitPrice is discount_price ?? price of the snapshot (zero without one).
func (it CartItem) UnitPrice() decimal.Decimal {
	if it.Product == nil {
		return decimal.Zero
	}
	return it.Product.EffectivePrice()
}

func (it CartItem) LineTotal() decimal.Decimal {
	return it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Total is Σ (discount_price ?? price) × quantity.
func Total(items []CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ItemCount is Σ quantity.
func ItemCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// CartItemsTableDDL defines the PostgreSQL DDL for cart_items.
const CartItemsTableDDL = `
CREATE TABLE IF NOT EXISTS cart_items (
  id          TEXT        PRIMARY KEY,
  user_id     TEXT        NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id  TEXT        NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  quantity    INTEGER     NOT NULL CHECK (quantity >= 1),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CONSTRAINT uq_cart_items_user_product UNIQUE (user_id, product_id)
);
`
