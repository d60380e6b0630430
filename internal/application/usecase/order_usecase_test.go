package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	_, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)
	o, err := env.workflow(nil, nil).PlaceOrder(ctx, us, PlaceOrderInput{ShippingAddress: validAddress()})
	require.NoError(t, err)

	uc := NewOrderUsecase(env.store.Orders(), env.store.OrderItems(), env.store.Products(), time.Second)
	owner := &userdom.User{ID: "shop-1", Role: userdom.RoleRetailer}
	stranger := &userdom.User{ID: "shop-2", Role: userdom.RoleRetailer}

	tests := []struct {
		name    string
		seller  *userdom.User
		orderID string
		status  string
		wantErr error
	}{
		{"customer is forbidden", us.Identity(), o.ID, "shipped", common.ErrForbidden},
		{"unknown status", owner, o.ID, "lost", common.ErrValidation},
		{"seller without a line", stranger, o.ID, "shipped", common.ErrNotFound},
		{"unknown order", owner, "nope", "shipped", common.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.UpdateOrderStatus(ctx, tt.seller, tt.orderID, tt.status)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := uc.UpdateOrderStatus(ctx, owner, o.ID, " Shipped ")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, got.Status)
}
