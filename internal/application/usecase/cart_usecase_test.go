package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	"github.com/UDAY2232/LackLink/internal/domain/common"
)

func TestCart_TotalUsesDiscountPrice(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("p10", "10", "", 10)
	env.putProduct("p20", "20", "15", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	_, err := us.Cart.Add(ctx, "p10", 2)
	require.NoError(t, err)
	_, err = us.Cart.Add(ctx, "p20", 1)
	require.NoError(t, err)

	assert.Equal(t, "35", us.Cart.Total().String())
	assert.Equal(t, 3, us.Cart.ItemCount())
}

func TestCart_ItemCountSumsQuantities(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "1", "", 10)
	env.putProduct("b", "2", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	_, err := us.Cart.Add(ctx, "a", 3)
	require.NoError(t, err)
	_, err = us.Cart.Add(ctx, "b", 3)
	require.NoError(t, err)

	assert.Equal(t, 6, us.Cart.ItemCount())
	assert.Len(t, us.Cart.Items(), 2)
}

func TestCart_AddSameProductKeepsOneLine(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "4", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	for _, n := range []int{1, 2, 4} {
		_, err := us.Cart.Add(ctx, "a", n)
		require.NoError(t, err)
	}

	items := us.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	rows, err := env.store.CartItems().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].Quantity)
}

func TestCart_AddAfterConcurrentInsertIncrements(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "4", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	// a second aggregate of the same user inserts first
	other := NewCart(env.store.CartItems(), env.store.Products(), 0)
	other.OnIdentityChange(ctx, us.Identity())
	_, err := other.Add(ctx, "a", 2)
	require.NoError(t, err)

	it, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, it.Quantity)
	require.Len(t, us.Cart.Items(), 1)
	assert.Equal(t, 3, us.Cart.Items()[0].Quantity)
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "5", "", 10)
	env.putProduct("b", "7", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	a, err := us.Cart.Add(ctx, "a", 2)
	require.NoError(t, err)
	_, err = us.Cart.Add(ctx, "b", 1)
	require.NoError(t, err)

	_, err = us.Cart.SetQuantity(ctx, a.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, "7", us.Cart.Total().String())
	assert.Equal(t, 1, us.Cart.ItemCount())
	_, err = env.store.CartItems().FindByUserAndProduct(ctx, "u1", "a")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCart_SetQuantityReplacesByID(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "5", "", 10)
	env.putProduct("b", "7", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	a, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)
	b, err := us.Cart.Add(ctx, "b", 1)
	require.NoError(t, err)

	_, err = us.Cart.SetQuantity(ctx, b.ID, 4)
	require.NoError(t, err)
	_, err = us.Cart.SetQuantity(ctx, a.ID, 2)
	require.NoError(t, err)

	got := map[string]int{}
	for _, it := range us.Cart.Items() {
		got[it.ID] = it.Quantity
		assert.NotNil(t, it.Product)
	}
	assert.Equal(t, map[string]int{a.ID: 2, b.ID: 4}, got)
}

func TestCart_RemoveMissingIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "5", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	_, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)
	before := us.Cart.Items()

	require.NoError(t, us.Cart.Remove(ctx, "does-not-exist"))
	assert.Equal(t, before, us.Cart.Items())
}

func TestCart_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "5", "", 10)
	c := NewCart(env.store.CartItems(), env.store.Products(), 0)

	_, err := c.Add(context.Background(), "a", 1)
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestCart_FailedUpdateLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "5", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	a, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)

	broken := NewCart(failingCartRepo{Repository: env.store.CartItems()}, env.store.Products(), 0)
	broken.OnIdentityChange(ctx, us.Identity())
	require.Len(t, broken.Items(), 1)

	_, err = broken.SetQuantity(ctx, a.ID, 5)
	assert.ErrorIs(t, err, common.ErrRemoteFailure)
	assert.Equal(t, 1, broken.ItemCount())
}

func TestCart_SignOutEmptiesMemoryOnly(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "5", "", 10)
	us := env.signIn(t, "u1", "alice@example.com")
	ctx := context.Background()

	_, err := us.Cart.Add(ctx, "a", 1)
	require.NoError(t, err)

	env.registry.Drop(ctx, "u1")
	assert.Empty(t, us.Cart.Items())

	rows, err := env.store.CartItems().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type failingCartRepo struct {
	cartdom.Repository
}

func (failingCartRepo) UpdateQuantity(context.Context, string, string, int) (cartdom.CartItem, error) {
	return cartdom.CartItem{}, errors.New("connection reset")
}
