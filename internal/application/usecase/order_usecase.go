// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// OrderUsecase holds the seller-side order commands.
type OrderUsecase struct {
	orders   orderdom.Repository
	items    orderitemdom.Repository
	products productdom.Repository
	timeout  time.Duration
}

func NewOrderUsecase(orders orderdom.Repository, items orderitemdom.Repository, products productdom.Repository, timeout time.Duration) *OrderUsecase {
	return &OrderUsecase{orders: orders, items: items, products: products, timeout: timeout}
}

// UpdateOrderStatus sets the status of orderID. The seller must own at least one
// line of the order; otherwise the order is reported as not found.
func (uc *OrderUsecase) UpdateOrderStatus(ctx context.Context, seller *userdom.User, orderID, status string) (orderdom.Order, error) {
	if err := requireRetailer(seller); err != nil {
		return orderdom.Order{}, err
	}
	st, err := orderdom.ParseStatus(status)
	if err != nil {
		return orderdom.Order{}, err
	}
	orderID = strings.TrimSpace(orderID)

	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	lines, err := uc.items.ListByOrder(cctx, orderID)
	if err != nil {
		return orderdom.Order{}, err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	ids = dedupStrings(ids)
	if len(ids) == 0 {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	owned, err := uc.products.Count(cctx, productdom.Filter{IDs: ids, RetailerID: seller.ID, IncludeInactive: true})
	if err != nil {
		return orderdom.Order{}, err
	}
	if owned == 0 {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	o, err := uc.orders.UpdateStatus(cctx, orderID, st)
	if err != nil {
		log.Printf("[order_uc] updateStatus failed order=%s status=%s err=%v", orderID, st, err)
		return orderdom.Order{}, err
	}
	log.Printf("[order_uc] status updated order=%s status=%s by=%s", orderID, st, seller.ID)
	return o, nil
}
