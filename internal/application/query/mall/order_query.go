// internal/application/query/mall/order_query.go
package mall

import (
	"context"
	"strings"
	"time"

	dto "github.com/UDAY2232/LackLink/internal/application/query/mall/dto"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// OrderQuery resolves the buyer's order history:
// - uid -> orders (newest first)
// - orderIds -> order items
// - productIds -> current product rows (inactive included)
type OrderQuery struct {
	OrderRepo     orderdom.Repository
	OrderItemRepo orderitemdom.Repository
	ProductRepo   productdom.Repository

	Timeout time.Duration
}

func NewOrderQuery(orders orderdom.Repository, items orderitemdom.Repository, products productdom.Repository, timeout time.Duration) *OrderQuery {
	return &OrderQuery{OrderRepo: orders, OrderItemRepo: items, ProductRepo: products, Timeout: timeout}
}

func (q *OrderQuery) ListByUser(ctx context.Context, userID string) ([]dto.OrderDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, common.ErrUnauthenticated
	}

	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	orders, err := q.OrderRepo.ListByUser(cctx, userID)
	if err != nil {
		return nil, common.Remote("orders.listByUser", err)
	}
	if len(orders) == 0 {
		return []dto.OrderDTO{}, nil
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := q.OrderItemRepo.ListByOrders(cctx, orderIDs)
	if err != nil {
		return nil, common.Remote("orders.items", err)
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	products := map[string]productdom.Product{}
	if productIDs = uniqueNonEmpty(productIDs); len(productIDs) > 0 {
		ps, err := q.ProductRepo.List(cctx, productdom.Filter{IDs: productIDs, IncludeInactive: true}, productdom.DefaultSort)
		if err != nil {
			return nil, common.Remote("orders.products", err)
		}
		for _, p := range ps {
			products[p.ID] = p
		}
	}

	byOrder := map[string][]dto.OrderItemDTO{}
	for _, it := range items {
		row := dto.OrderItemDTO{OrderItem: it}
		if p, ok := products[it.ProductID]; ok {
			row.Product = &p
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], row)
	}

	out := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		lines := byOrder[o.ID]
		if lines == nil {
			lines = []dto.OrderItemDTO{}
		}
		out = append(out, dto.OrderDTO{Order: o, OrderItems: lines})
	}
	return out, nil
}
