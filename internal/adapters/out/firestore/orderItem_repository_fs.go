// internal/adapters/out/firestore/orderItem_repository_fs.go
package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
)

// OrderItemRepositoryFS implements orderItem.Repository.
type OrderItemRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderItemRepositoryFS(client *firestore.Client) *OrderItemRepositoryFS {
	return &OrderItemRepositoryFS{Client: client}
}

func (r *OrderItemRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(colOrderItems)
}

type orderItemDoc struct {
	OrderID   string    `firestore:"order_id"`
	ProductID string    `firestore:"product_id"`
	Quantity  int       `firestore:"quantity"`
	Price     string    `firestore:"price"`
	CreatedAt time.Time `firestore:"created_at"`
}

func decodeOrderItem(snap *firestore.DocumentSnapshot) (orderitemdom.OrderItem, error) {
	var d orderItemDoc
	if err := snap.DataTo(&d); err != nil {
		return orderitemdom.OrderItem{}, err
	}
	return orderitemdom.OrderItem{
		ID:        snap.Ref.ID,
		OrderID:   d.OrderID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		Price:     parseDecimal(d.Price),
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

// CreateBatch uses Set keyed by the deterministic line id, so a replay
// overwrites identical data instead of adding rows.
func (r *OrderItemRepositoryFS) CreateBatch(ctx context.Context, items []orderitemdom.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := r.Client.Batch()
	for _, it := range items {
		batch.Set(r.col().Doc(it.ID), orderItemDoc{
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     decimalToString(it.Price),
			CreatedAt: it.CreatedAt.UTC(),
		})
	}
	_, err := batch.Commit(ctx)
	return classify("order_items.create_batch", err, nil, nil)
}

func (r *OrderItemRepositoryFS) ListByOrder(ctx context.Context, orderID string) ([]orderitemdom.OrderItem, error) {
	return r.ListByOrders(ctx, []string{orderID})
}

func (r *OrderItemRepositoryFS) ListByOrders(ctx context.Context, orderIDs []string) ([]orderitemdom.OrderItem, error) {
	items, err := queryIn(ctx, r.col().Query, "order_id", orderIDs, decodeOrderItem)
	if err != nil {
		return nil, classify("order_items.list_by_orders", err, nil, nil)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].OrderID != items[j].OrderID {
			return items[i].OrderID < items[j].OrderID
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *OrderItemRepositoryFS) ListByProducts(ctx context.Context, productIDs []string) ([]orderitemdom.OrderItem, error) {
	items, err := queryIn(ctx, r.col().Query, "product_id", productIDs, decodeOrderItem)
	if err != nil {
		return nil, classify("order_items.list_by_products", err, nil, nil)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
