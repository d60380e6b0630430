package orderitem

import "context"

// Repository is the persistence port for order_items.
type Repository interface {
	// CreateBatch is idempotent by id: rows that already exist are left as they are.
	CreateBatch(ctx context.Context, items []OrderItem) error

	ListByOrder(ctx context.Context, orderID string) ([]OrderItem, error)
	ListByOrders(ctx context.Context, orderIDs []string) ([]OrderItem, error)

	// ListByProducts returns lines for any of productIDs, newest first.
	ListByProducts(ctx context.Context, productIDs []string) ([]OrderItem, error)
}
