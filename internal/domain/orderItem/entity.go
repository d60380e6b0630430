// internal/domain/orderItem/entity.go
package orderitem

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one persisted order line. Price is a snapshot, decoupled from later product edits.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

var idNamespace = uuid.MustParse("6f1c8a52-3d5e-4c1b-9e0a-2b7d4f6a8c31")

// DeterministicID derives the id of the n-th line of an order,
// so recording the same order twice writes the same rows.
func DeterministicID(orderID string, n int) string {
	return uuid.NewSHA1(idNamespace, []byte(orderID+"#"+strconv.Itoa(n))).String()
}

// OrderItemsTableDDL defines the PostgreSQL DDL for order_items.
const OrderItemsTableDDL = `
CREATE TABLE IF NOT EXISTS order_items (
  id          TEXT          PRIMARY KEY,
  order_id    TEXT          NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id  TEXT          NOT NULL REFERENCES products(id),
  quantity    INTEGER       NOT NULL CHECK (quantity >= 1),
  price       NUMERIC(12,2) NOT NULL,
  created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
`
