// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	paymentdom "github.com/UDAY2232/LackLink/internal/domain/payment"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

var (
	ErrEmptyCart          = common.NewValidationError("cart", "cart is empty")
	ErrUnavailableProduct = common.NewValidationError("cart", "cart contains a product that is no longer available")
	ErrOrderFailed        = fmt.Errorf("checkout: order placement failed: %w", common.ErrConflict)
)

// CheckoutGuard serializes checkouts per user. Acquire fails with orderdom.ErrCheckoutBusy
// while another checkout of the same user is in flight.
type CheckoutGuard interface {
	Acquire(ctx context.Context, userID string) (release func(), err error)
}

// OrderNotifier sends the confirmation after a completed placement.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order) error
}

type OrderWorkflowDeps struct {
	Orders     orderdom.Repository
	OrderItems orderitemdom.Repository
	Products   productdom.Repository
	Users      userdom.Repository
	CartItems  cartdom.Repository
	Payments   paymentdom.Processor
	Guard      CheckoutGuard
	Mailer     OrderNotifier // optional
	Clock      Clock
	Timeout    time.Duration
}

// OrderWorkflow turns a cart into an order. Step completion is persisted on the
// order (workflow_state, stock_applied) so an interrupted placement can be resumed.
type OrderWorkflow struct {
	orders   orderdom.Repository
	items    orderitemdom.Repository
	products productdom.Repository
	users    userdom.Repository
	carts    cartdom.Repository
	payments paymentdom.Processor
	guard    CheckoutGuard
	mailer   OrderNotifier
	clock    Clock
	newID    func() string
	timeout  time.Duration
	tracer   trace.Tracer
}

func NewOrderWorkflow(d OrderWorkflowDeps) *OrderWorkflow {
	if d.Clock == nil {
		d.Clock = systemClock{}
	}
	if d.Payments == nil {
		d.Payments = paymentdom.SimulatedProcessor{}
	}
	return &OrderWorkflow{
		orders:   d.Orders,
		items:    d.OrderItems,
		products: d.Products,
		users:    d.Users,
		carts:    d.CartItems,
		payments: d.Payments,
		guard:    d.Guard,
		mailer:   d.Mailer,
		clock:    d.Clock,
		newID:    newUUID,
		timeout:  d.Timeout,
		tracer:   otel.Tracer("github.com/UDAY2232/LackLink/internal/application/usecase"),
	}
}

type PlaceOrderInput struct {
	ShippingAddress shipdom.Address
	PaymentMethod   string
}

// PlaceOrder places the cart of us. On success the cart is empty and the
// order's total equals the cart total before checkout.
func (w *OrderWorkflow) PlaceOrder(ctx context.Context, us *UserSession, in PlaceOrderInput) (orderdom.Order, error) {
	if us == nil {
		return orderdom.Order{}, ErrSignInRequired
	}
	identity := us.Identity()
	if identity == nil {
		return orderdom.Order{}, ErrSignInRequired
	}

	// form checks first; nothing remote has happened yet
	method, err := paymentdom.ParseMethod(in.PaymentMethod)
	if err != nil {
		return orderdom.Order{}, err
	}
	addr := in.ShippingAddress.Normalize()
	if err := addr.Validate(); err != nil {
		return orderdom.Order{}, err
	}

	ctx, span := w.tracer.Start(ctx, "checkout.placeOrder", trace.WithAttributes(attribute.String("user.id", identity.ID)))
	defer span.End()

	release, err := w.acquire(ctx, identity.ID)
	if err != nil {
		return orderdom.Order{}, w.fail(span, err)
	}
	defer release()

	cartItems := us.Cart.Items()
	if len(cartItems) == 0 {
		return orderdom.Order{}, w.fail(span, ErrEmptyCart)
	}
	lines := make([]orderdom.Line, 0, len(cartItems))
	for _, it := range cartItems {
		if it.Product == nil {
			return orderdom.Order{}, w.fail(span, ErrUnavailableProduct)
		}
		lines = append(lines, orderdom.Line{
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice(),
		})
	}
	total := cartdom.Total(cartItems)
	orderID := w.newID()

	payStatus, err := w.charge(ctx, orderID, method, total)
	if err != nil {
		return orderdom.Order{}, w.fail(span, err)
	}

	o, err := orderdom.New(orderID, identity.ID, lines, addr, method, payStatus, total, w.clock.Now())
	if err != nil {
		return orderdom.Order{}, w.fail(span, err)
	}
	if o, err = w.create(ctx, o); err != nil {
		return orderdom.Order{}, w.fail(span, err)
	}
	span.SetAttributes(attribute.String("order.id", o.ID))

	o, err = w.run(ctx, o, us.Cart.Clear, identity.Email)
	if err != nil {
		return o, w.fail(span, err)
	}
	return o, nil
}

// Resume continues orderID from its recorded workflow state.
// cart, when given, is the live aggregate of the order's owner.
func (w *OrderWorkflow) Resume(ctx context.Context, orderID string, cart *Cart) (orderdom.Order, error) {
	cctx, cancel := withTimeout(ctx, w.timeout)
	o, err := w.orders.GetByID(cctx, strings.TrimSpace(orderID))
	cancel()
	if err != nil {
		return orderdom.Order{}, err
	}
	if o.WorkflowState.Terminal() {
		return o, nil
	}

	ctx, span := w.tracer.Start(ctx, "checkout.resume", trace.WithAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.workflow_state", string(o.WorkflowState)),
	))
	defer span.End()

	release, err := w.acquire(ctx, o.UserID)
	if err != nil {
		return o, w.fail(span, err)
	}
	defer release()

	clearCart := func(ctx context.Context) error {
		cctx, cancel := withTimeout(ctx, w.timeout)
		defer cancel()
		return w.carts.DeleteByUser(cctx, o.UserID)
	}
	if cart != nil && cart.UserID() == o.UserID {
		clearCart = cart.Clear
	}

	log.Printf("[checkout] resuming order=%s state=%s stockApplied=%d", o.ID, o.WorkflowState, o.StockApplied)
	o, err = w.run(ctx, o, clearCart, w.emailOf(ctx, o.UserID))
	if err != nil {
		return o, w.fail(span, err)
	}
	return o, nil
}

// ReconcilePending resumes every order left in a non-terminal state.
// Orders of users with a checkout in flight are skipped.
func (w *OrderWorkflow) ReconcilePending(ctx context.Context) (int, error) {
	cctx, cancel := withTimeout(ctx, w.timeout)
	pending, err := w.orders.ListByWorkflowStates(cctx, orderdom.PendingWorkflowStates)
	cancel()
	if err != nil {
		return 0, common.Remote("checkout.reconcile", err)
	}

	resumed := 0
	for _, o := range pending {
		if _, err := w.Resume(ctx, o.ID, nil); err != nil {
			log.Printf("[checkout] reconcile order=%s failed err=%v", o.ID, err)
			continue
		}
		resumed++
	}
	if len(pending) > 0 {
		log.Printf("[checkout] reconcile done pending=%d resumed=%d", len(pending), resumed)
	}
	return resumed, nil
}

// run drives o through the remaining states.
func (w *OrderWorkflow) run(ctx context.Context, o orderdom.Order, clearCart func(context.Context) error, email string) (orderdom.Order, error) {
	for {
		switch o.WorkflowState {
		case orderdom.WorkflowCreated:
			if err := w.recordItems(ctx, &o); err != nil {
				return o, err
			}
		case orderdom.WorkflowItemsRecorded:
			if err := w.decrementStock(ctx, &o); err != nil {
				return o, err
			}
		case orderdom.WorkflowStockDecremented:
			if err := w.step(ctx, "checkout.clearCart", o.ID, clearCart); err != nil {
				return o, err
			}
			if err := w.advance(ctx, &o, orderdom.Progress{State: orderdom.WorkflowCartCleared, StockApplied: o.StockApplied}); err != nil {
				return o, err
			}
		case orderdom.WorkflowCartCleared:
			if err := w.advance(ctx, &o, orderdom.Progress{State: orderdom.WorkflowCompleted, StockApplied: o.StockApplied}); err != nil {
				return o, err
			}
			log.Printf("[checkout] OK order=%s user=%s total=%s lines=%d", o.ID, o.UserID, o.TotalAmount.StringFixed(2), len(o.Items))
			w.notify(ctx, email, o)
		case orderdom.WorkflowCompleted:
			return o, nil
		case orderdom.WorkflowFailed:
			return o, ErrOrderFailed
		default:
			return o, fmt.Errorf("checkout: order %s has unknown workflow state %q: %w", o.ID, o.WorkflowState, common.ErrConflict)
		}
	}
}

// recordItems writes one order item per line. Ids are derived from the order id,
// so a second run writes the same rows.
func (w *OrderWorkflow) recordItems(ctx context.Context, o *orderdom.Order) error {
	now := w.clock.Now().UTC()
	items := make([]orderitemdom.OrderItem, 0, len(o.Items))
	for n, l := range o.Items {
		items = append(items, orderitemdom.OrderItem{
			ID:        orderitemdom.DeterministicID(o.ID, n),
			OrderID:   o.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			CreatedAt: now,
		})
	}
	err := w.step(ctx, "checkout.recordItems", o.ID, func(ctx context.Context) error {
		cctx, cancel := withTimeout(ctx, w.timeout)
		defer cancel()
		return w.items.CreateBatch(cctx, items)
	})
	if err != nil {
		return common.Remote("checkout.recordItems", err)
	}
	return w.advance(ctx, o, orderdom.Progress{State: orderdom.WorkflowItemsRecorded})
}

// decrementStock applies lines from StockApplied on, one conditional decrement each.
// A line that cannot be satisfied restocks the earlier lines and fails the order.
func (w *OrderWorkflow) decrementStock(ctx context.Context, o *orderdom.Order) error {
	ctx, span := w.tracer.Start(ctx, "checkout.decrementStock", trace.WithAttributes(attribute.String("order.id", o.ID)))
	defer span.End()

	for i := o.StockApplied; i < len(o.Items); i++ {
		l := o.Items[i]

		cctx, cancel := withTimeout(ctx, w.timeout)
		_, err := w.products.DecrementStock(cctx, l.ProductID, l.Quantity)
		cancel()

		switch {
		case err == nil:
		case errors.Is(err, productdom.ErrInsufficientStock), errors.Is(err, common.ErrNotFound):
			span.SetAttributes(attribute.String("checkout.short_product", l.ProductID))
			return w.compensate(ctx, o, i, l)
		default:
			// remote failure: the order stays resumable from line i
			return w.fail(span, common.Remote("checkout.decrementStock", err))
		}

		if err := w.advance(ctx, o, orderdom.Progress{State: orderdom.WorkflowItemsRecorded, StockApplied: i + 1}); err != nil {
			return w.fail(span, err)
		}
	}
	return w.advance(ctx, o, orderdom.Progress{State: orderdom.WorkflowStockDecremented, StockApplied: len(o.Items)})
}

func (w *OrderWorkflow) compensate(ctx context.Context, o *orderdom.Order, failedAt int, short orderdom.Line) error {
	for j := failedAt - 1; j >= 0; j-- {
		l := o.Items[j]
		cctx, cancel := withTimeout(ctx, w.timeout)
		if err := w.products.IncrementStock(cctx, l.ProductID, l.Quantity); err != nil {
			log.Printf("[checkout] WARN restock failed order=%s product=%s qty=%d err=%v", o.ID, l.ProductID, l.Quantity, err)
		}
		cancel()
	}

	reason := fmt.Sprintf("insufficient stock for %s", short.ProductName)
	if err := w.advance(ctx, o, orderdom.Progress{
		State:         orderdom.WorkflowFailed,
		StockApplied:  0,
		Status:        ptr(orderdom.StatusCancelled),
		PaymentStatus: ptr(paymentdom.StatusFailed),
		FailureReason: reason,
	}); err != nil {
		log.Printf("[checkout] WARN could not mark order failed order=%s err=%v", o.ID, err)
	}
	log.Printf("[checkout] order=%s cancelled: %s", o.ID, reason)
	return fmt.Errorf("checkout: %s: %w", short.ProductName, productdom.ErrInsufficientStock)
}

func (w *OrderWorkflow) create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	var created orderdom.Order
	err := w.step(ctx, "checkout.createOrder", o.ID, func(ctx context.Context) error {
		cctx, cancel := withTimeout(ctx, w.timeout)
		defer cancel()
		var err error
		created, err = w.orders.Create(cctx, o)
		return err
	})
	if err != nil {
		log.Printf("[checkout] create order failed user=%s err=%v", o.UserID, err)
		return orderdom.Order{}, common.Remote("checkout.createOrder", err)
	}
	return created, nil
}

func (w *OrderWorkflow) charge(ctx context.Context, orderID string, method paymentdom.Method, total decimal.Decimal) (paymentdom.Status, error) {
	var st paymentdom.Status
	err := w.step(ctx, "checkout.charge", orderID, func(ctx context.Context) error {
		cctx, cancel := withTimeout(ctx, w.timeout)
		defer cancel()
		var err error
		st, err = w.payments.Charge(cctx, orderID, method, total)
		return err
	})
	if err != nil {
		return "", common.Remote("checkout.charge", err)
	}
	return st, nil
}

// advance persists p and mirrors it on o.
func (w *OrderWorkflow) advance(ctx context.Context, o *orderdom.Order, p orderdom.Progress) error {
	p.UpdatedAt = w.clock.Now()
	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.orders.UpdateProgress(cctx, o.ID, p); err != nil {
		log.Printf("[checkout] progress write failed order=%s state=%s err=%v", o.ID, p.State, err)
		return common.Remote("checkout.progress", err)
	}
	p.ApplyTo(o)
	return nil
}

func (w *OrderWorkflow) step(ctx context.Context, name, orderID string, fn func(context.Context) error) error {
	ctx, span := w.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()
	if err := fn(ctx); err != nil {
		return w.fail(span, err)
	}
	return nil
}

func (w *OrderWorkflow) acquire(ctx context.Context, userID string) (func(), error) {
	if w.guard == nil {
		return func() {}, nil
	}
	return w.guard.Acquire(ctx, userID)
}

func (w *OrderWorkflow) notify(ctx context.Context, email string, o orderdom.Order) {
	if w.mailer == nil || strings.TrimSpace(email) == "" {
		return
	}
	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.mailer.SendOrderConfirmation(cctx, email, o); err != nil {
		log.Printf("[checkout] WARN confirmation mail failed order=%s err=%v", o.ID, err)
	}
}

func (w *OrderWorkflow) emailOf(ctx context.Context, userID string) string {
	if w.users == nil {
		return ""
	}
	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()
	u, err := w.users.GetByID(cctx, userID)
	if err != nil {
		return ""
	}
	return u.Email
}

func (w *OrderWorkflow) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
