package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/adapters/out/redis"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	paymentdom "github.com/UDAY2232/LackLink/internal/domain/payment"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
)

func (e *testEnv) workflow(mailer OrderNotifier, payments paymentdom.Processor) *OrderWorkflow {
	return NewOrderWorkflow(OrderWorkflowDeps{
		Orders:     e.store.Orders(),
		OrderItems: e.store.OrderItems(),
		Products:   e.store.Products(),
		Users:      e.store.Users(),
		CartItems:  e.store.CartItems(),
		Payments:   payments,
		Guard:      redis.NewLocalGuard(),
		Mailer:     mailer,
		Timeout:    time.Second,
	})
}

func TestPlaceOrder_Completes(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("p10", "10", "", 5)
	env.putProduct("p20", "20", "15", 5)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()
	mail := &recordingMailer{}
	wf := env.workflow(mail, nil)

	_, err := us.Cart.Add(ctx, "p10", 2)
	require.NoError(t, err)
	_, err = us.Cart.Add(ctx, "p20", 1)
	require.NoError(t, err)
	before := us.Cart.Total()

	o, err := wf.PlaceOrder(ctx, us, PlaceOrderInput{ShippingAddress: validAddress(), PaymentMethod: "paypal"})
	require.NoError(t, err)

	assert.True(t, before.Equal(o.TotalAmount))
	assert.Equal(t, orderdom.WorkflowCompleted, o.WorkflowState)
	assert.Equal(t, orderdom.StatusPending, o.Status)
	assert.Equal(t, paymentdom.StatusCompleted, o.PaymentStatus)
	assert.Equal(t, paymentdom.MethodPayPal, o.PaymentMethod)
	assert.Equal(t, "US", o.ShippingAddress.Country)

	assert.Empty(t, us.Cart.Items())
	assert.True(t, us.Cart.Total().IsZero())
	rows, err := env.store.CartItems().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, rows)

	items, err := env.store.OrderItems().ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	prices := map[string]string{}
	for _, it := range items {
		prices[it.ProductID] = it.Price.String()
	}
	assert.Equal(t, map[string]string{"p10": "10", "p20": "15"}, prices)

	assert.Equal(t, 3, env.stock(t, "p10"))
	assert.Equal(t, 4, env.stock(t, "p20"))

	stored, err := env.store.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.WorkflowCompleted, stored.WorkflowState)
	assert.Equal(t, []string{"alice@example.com"}, mail.sent)
}

func TestPlaceOrder_ValidatesBeforeAnyWrite(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()
	wf := env.workflow(nil, nil)

	_, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"missing city", PlaceOrderInput{ShippingAddress: withCity(validAddress(), " ")}},
		{"unknown payment method", PlaceOrderInput{ShippingAddress: validAddress(), PaymentMethod: "bitcoin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wf.PlaceOrder(ctx, us, tt.in)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	orders, err := env.store.Orders().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Len(t, us.Cart.Items(), 1)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	us := env.signIn(t, "u1", "alice@example.com")

	_, err := env.workflow(nil, nil).PlaceOrder(context.Background(), us, PlaceOrderInput{ShippingAddress: validAddress()})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_InsufficientStockRestocksAndCancels(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	env.putProduct("b", "10", "", 1)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	_, err := us.Cart.Add(ctx, "a", 2)
	require.NoError(t, err)
	_, err = us.Cart.Add(ctx, "b", 3)
	require.NoError(t, err)

	o, err := env.workflow(nil, nil).PlaceOrder(ctx, us, PlaceOrderInput{ShippingAddress: validAddress()})
	require.Error(t, err)
	assert.ErrorIs(t, err, productdom.ErrInsufficientStock)

	assert.Equal(t, 5, env.stock(t, "a"))
	assert.Equal(t, 1, env.stock(t, "b"))

	stored, err := env.store.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.WorkflowFailed, stored.WorkflowState)
	assert.Equal(t, orderdom.StatusCancelled, stored.Status)
	assert.Equal(t, paymentdom.StatusFailed, stored.PaymentStatus)
	assert.Contains(t, stored.FailureReason, "Product b")

	assert.Len(t, us.Cart.Items(), 2, "cart survives a failed placement")
}

func TestPlaceOrder_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("hot", "10", "", 5)
	wf := env.workflow(nil, nil)
	ctx := context.Background()

	const buyers = 12
	sessions := make([]*UserSession, buyers)
	for i := range sessions {
		uid := "buyer-" + string(rune('a'+i))
		sessions[i] = env.signIn(t, uid, uid+"@example.com")
		_, err := sessions[i].Cart.Add(ctx, "hot", 1)
		require.NoError(t, err)
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, us := range sessions {
		wg.Add(1)
		go func(us *UserSession) {
			defer wg.Done()
			if _, err := wf.PlaceOrder(ctx, us, PlaceOrderInput{ShippingAddress: validAddress()}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(us)
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 0, env.stock(t, "hot"))
}

func TestPlaceOrder_GuardRejectsSecondCheckout(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()
	_, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)

	pay := &blockingProcessor{entered: make(chan struct{}), release: make(chan struct{})}
	wf := env.workflow(nil, pay)

	done := make(chan error, 1)
	go func() {
		_, err := wf.PlaceOrder(ctx, us, PlaceOrderInput{ShippingAddress: validAddress()})
		done <- err
	}()
	<-pay.entered

	_, err = wf.PlaceOrder(ctx, us, PlaceOrderInput{ShippingAddress: validAddress()})
	assert.ErrorIs(t, err, orderdom.ErrCheckoutBusy)
	assert.ErrorIs(t, err, common.ErrConflict)

	close(pay.release)
	require.NoError(t, <-done)
	assert.Equal(t, 4, env.stock(t, "a"))
}

func TestResume_FromItemsRecordedDoesNotDuplicateItems(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	env.putProduct("b", "3", "", 5)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()
	_, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)
	_, err = us.Cart.Add(ctx, "b", 2)
	require.NoError(t, err)

	o := seedInterruptedOrder(t, env, "o-1", "u1", orderdom.WorkflowItemsRecorded, 1, []orderdom.Line{
		{ProductID: "a", ProductName: "Product a", Quantity: 1, Price: decimal.NewFromInt(10)},
		{ProductID: "b", ProductName: "Product b", Quantity: 2, Price: decimal.NewFromInt(3)},
	})
	// line 0 was already applied before the interruption
	_, err = env.store.Products().DecrementStock(ctx, "a", 1)
	require.NoError(t, err)

	wf := env.workflow(nil, nil)
	got, err := wf.Resume(ctx, o.ID, us.Cart)
	require.NoError(t, err)
	assert.Equal(t, orderdom.WorkflowCompleted, got.WorkflowState)

	items, err := env.store.OrderItems().ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.Equal(t, 4, env.stock(t, "a"))
	assert.Equal(t, 3, env.stock(t, "b"))
	assert.Empty(t, us.Cart.Items())

	// a second resume is a no-op
	again, err := wf.Resume(ctx, o.ID, us.Cart)
	require.NoError(t, err)
	assert.Equal(t, orderdom.WorkflowCompleted, again.WorkflowState)
	assert.Equal(t, 3, env.stock(t, "b"))
}

func TestReconcilePending_ResumesEveryOpenOrder(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	ctx := context.Background()
	line := []orderdom.Line{{ProductID: "a", ProductName: "Product a", Quantity: 1, Price: decimal.NewFromInt(10)}}

	seedInterruptedOrder(t, env, "o-created", "shop-2", orderdom.WorkflowCreated, 0, line)
	seedInterruptedOrder(t, env, "o-cleared", "shop-2", orderdom.WorkflowCartCleared, 1, line)

	n, err := env.workflow(nil, nil).ReconcilePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pending, err := env.store.Orders().ListByWorkflowStates(ctx, orderdom.PendingWorkflowStates)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, 4, env.stock(t, "a"))
}

func withCity(a shipdom.Address, city string) shipdom.Address {
	a.City = city
	return a
}

func seedInterruptedOrder(t *testing.T, env *testEnv, id, uid string, state orderdom.WorkflowState, applied int, lines []orderdom.Line) orderdom.Order {
	t.Helper()
	ctx := context.Background()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	o, err := orderdom.New(id, uid, lines, validAddress(), paymentdom.MethodCard, paymentdom.StatusCompleted, total, time.Now())
	require.NoError(t, err)
	_, err = env.store.Orders().Create(ctx, o)
	require.NoError(t, err)

	if state != orderdom.WorkflowCreated {
		items := make([]orderitemdom.OrderItem, 0, len(lines))
		for n, l := range lines {
			items = append(items, orderitemdom.OrderItem{
				ID: orderitemdom.DeterministicID(id, n), OrderID: id, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price,
			})
		}
		require.NoError(t, env.store.OrderItems().CreateBatch(ctx, items))
		require.NoError(t, env.store.Orders().UpdateProgress(ctx, id, orderdom.Progress{State: state, StockApplied: applied}))
	}
	o, err = env.store.Orders().GetByID(ctx, id)
	require.NoError(t, err)
	return o
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendOrderConfirmation(_ context.Context, to string, _ orderdom.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

type blockingProcessor struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (p *blockingProcessor) Charge(ctx context.Context, _ string, _ paymentdom.Method, _ decimal.Decimal) (paymentdom.Status, error) {
	p.once.Do(func() { close(p.entered) })
	select {
	case <-p.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return paymentdom.StatusCompleted, nil
}
