package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
)

// PostgreSQL implementation of orderitem.Repository
type OrderItemRepositoryPG struct {
	DB *sql.DB
}

func NewOrderItemRepositoryPG(db *sql.DB) *OrderItemRepositoryPG {
	return &OrderItemRepositoryPG{DB: db}
}

const orderItemColumns = `id, order_id, product_id, quantity, price, created_at`

// CreateBatch inserts all lines in one transaction; existing ids are skipped.
func (r *OrderItemRepositoryPG) CreateBatch(ctx context.Context, items []orderitemdom.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbcommon.WithTx(ctx, r.DB, func(ctx context.Context) error {
		run := dbcommon.GetRunner(ctx, r.DB)
		const q = `
INSERT INTO order_items (` + orderItemColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`
		for _, it := range items {
			if _, err := run.ExecContext(ctx, q,
				it.ID, it.OrderID, it.ProductID, it.Quantity, it.Price, it.CreatedAt.UTC(),
			); err != nil {
				return dbcommon.Classify("order_items.create", err, nil, nil)
			}
		}
		return nil
	})
}

func (r *OrderItemRepositoryPG) ListByOrder(ctx context.Context, orderID string) ([]orderitemdom.OrderItem, error) {
	return r.ListByOrders(ctx, []string{strings.TrimSpace(orderID)})
}

func (r *OrderItemRepositoryPG) ListByOrders(ctx context.Context, orderIDs []string) ([]orderitemdom.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitemdom.OrderItem{}, nil
	}
	return r.query(ctx, "order_items.list_by_orders", `WHERE order_id = ANY($1)`, pq.Array(orderIDs))
}

func (r *OrderItemRepositoryPG) ListByProducts(ctx context.Context, productIDs []string) ([]orderitemdom.OrderItem, error) {
	if len(productIDs) == 0 {
		return []orderitemdom.OrderItem{}, nil
	}
	return r.query(ctx, "order_items.list_by_products", `WHERE product_id = ANY($1)`, pq.Array(productIDs))
}

func (r *OrderItemRepositoryPG) query(ctx context.Context, op, where string, args ...any) ([]orderitemdom.OrderItem, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, `SELECT `+orderItemColumns+` FROM order_items `+where+` ORDER BY created_at DESC, id ASC`, args...)
	if err != nil {
		return nil, dbcommon.Classify(op, err, nil, nil)
	}
	defer rows.Close()

	out := make([]orderitemdom.OrderItem, 0)
	for rows.Next() {
		var it orderitemdom.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.CreatedAt); err != nil {
			return nil, dbcommon.Classify(op, err, nil, nil)
		}
		it.CreatedAt = it.CreatedAt.UTC()
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify(op, err, nil, nil)
	}
	return out, nil
}
