// internal/application/query/console/seller_query.go
package query

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	querydto "github.com/UDAY2232/LackLink/internal/application/query/console/dto"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// ============================================================
// Query Service (Read-model assembler)
// - retailerId -> own productIds (inactive included)
// - productIds -> order items
// - orderIds -> orders -> customer names
// ============================================================

type SellerQuery struct {
	productRepo   productdom.Repository
	orderRepo     orderdom.Repository
	orderItemRepo orderitemdom.Repository
	userRepo      userdom.Repository
	timeout       time.Duration
}

func NewSellerQuery(
	products productdom.Repository,
	orders orderdom.Repository,
	items orderitemdom.Repository,
	users userdom.Repository,
	timeout time.Duration,
) *SellerQuery {
	return &SellerQuery{
		productRepo:   products,
		orderRepo:     orders,
		orderItemRepo: items,
		userRepo:      users,
		timeout:       timeout,
	}
}

// Dashboard aggregates over every order line that references one of the seller's products.
func (q *SellerQuery) Dashboard(ctx context.Context, seller *userdom.User) (querydto.SellerDashboardDTO, error) {
	if err := requireRetailer(seller); err != nil {
		return querydto.SellerDashboardDTO{}, err
	}
	cctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	products, err := q.ownProducts(cctx, seller.ID)
	if err != nil {
		return querydto.SellerDashboardDTO{}, err
	}
	out := querydto.SellerDashboardDTO{ProductCount: len(products), Revenue: decimal.Zero}
	if len(products) == 0 {
		return out, nil
	}

	items, err := q.itemsOf(cctx, products)
	if err != nil {
		return querydto.SellerDashboardDTO{}, err
	}
	out.OrderLineCount = len(items)

	orderIDs := make([]string, 0, len(items))
	for _, it := range items {
		out.Revenue = out.Revenue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		orderIDs = append(orderIDs, it.OrderID)
	}
	if orderIDs = uniqueNonEmpty(orderIDs); len(orderIDs) == 0 {
		return out, nil
	}

	orders, err := q.orderRepo.ListByIDs(cctx, orderIDs)
	if err != nil {
		return querydto.SellerDashboardDTO{}, common.Remote("seller.orders", err)
	}
	customers := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		customers[o.UserID] = struct{}{}
	}
	out.UniqueCustomers = len(customers)
	return out, nil
}

// Orders returns the seller's lines grouped by order, newest order first.
func (q *SellerQuery) Orders(ctx context.Context, seller *userdom.User) ([]querydto.SellerOrderDTO, error) {
	if err := requireRetailer(seller); err != nil {
		return nil, err
	}
	cctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	products, err := q.ownProducts(cctx, seller.ID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []querydto.SellerOrderDTO{}, nil
	}
	items, err := q.itemsOf(cctx, products)
	if err != nil {
		return nil, err
	}

	linesByOrder := map[string][]querydto.SellerOrderLineDTO{}
	orderIDs := make([]string, 0, len(items))
	for _, it := range items {
		linesByOrder[it.OrderID] = append(linesByOrder[it.OrderID], querydto.SellerOrderLineDTO{
			OrderItem:   it,
			ProductName: products[it.ProductID].Name,
		})
		orderIDs = append(orderIDs, it.OrderID)
	}
	if orderIDs = uniqueNonEmpty(orderIDs); len(orderIDs) == 0 {
		return []querydto.SellerOrderDTO{}, nil
	}

	orders, err := q.orderRepo.ListByIDs(cctx, orderIDs)
	if err != nil {
		return nil, common.Remote("seller.orders", err)
	}
	names := q.customerNames(cctx, orders)

	out := make([]querydto.SellerOrderDTO, 0, len(orders))
	for _, o := range orders {
		lines := linesByOrder[o.ID]
		subtotal := decimal.Zero
		for _, l := range lines {
			subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		out = append(out, querydto.SellerOrderDTO{
			OrderID:         o.ID,
			CustomerID:      o.UserID,
			CustomerName:    names[o.UserID],
			Status:          o.Status,
			PaymentStatus:   o.PaymentStatus,
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       o.CreatedAt,
			Lines:           lines,
			Subtotal:        subtotal,
		})
	}
	return out, nil
}

func (q *SellerQuery) ownProducts(ctx context.Context, retailerID string) (map[string]productdom.Product, error) {
	ps, err := q.productRepo.List(ctx, productdom.Filter{RetailerID: retailerID, IncludeInactive: true}, productdom.DefaultSort)
	if err != nil {
		return nil, common.Remote("seller.products", err)
	}
	out := make(map[string]productdom.Product, len(ps))
	for _, p := range ps {
		out[p.ID] = p
	}
	return out, nil
}

func (q *SellerQuery) itemsOf(ctx context.Context, products map[string]productdom.Product) ([]orderitemdom.OrderItem, error) {
	ids := make([]string, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	items, err := q.orderItemRepo.ListByProducts(ctx, ids)
	if err != nil {
		return nil, common.Remote("seller.orderItems", err)
	}
	return items, nil
}

// customerNames is best-effort; a failed lookup leaves names empty.
func (q *SellerQuery) customerNames(ctx context.Context, orders []orderdom.Order) map[string]string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.UserID)
	}
	names := map[string]string{}
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return names
	}
	us, err := q.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		log.Printf("[seller_query] customer names lookup failed err=%v", err)
		return names
	}
	for _, u := range us {
		names[u.ID] = u.Name
	}
	return names
}
