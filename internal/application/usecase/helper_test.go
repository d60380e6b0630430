package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/adapters/out/memory"
	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

type testEnv struct {
	store    *memory.Store
	registry *SessionRegistry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := memory.NewStore()
	s.PutUser(userdom.User{ID: "shop-1", Email: "shop@example.com", Name: "Shop One", Role: userdom.RoleRetailer})
	s.PutUser(userdom.User{ID: "shop-2", Email: "other@example.com", Name: "Shop Two", Role: userdom.RoleRetailer})
	return &testEnv{
		store:    s,
		registry: NewSessionRegistry(s.Users(), s.Products(), s.CartItems(), s.Wishlists(), time.Second, time.Minute),
	}
}

func (e *testEnv) putProduct(id string, price string, discount string, stock int) productdom.Product {
	p := productdom.Product{
		ID:            id,
		Name:          "Product " + id,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		RetailerID:    "shop-1",
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if discount != "" {
		d := decimal.RequireFromString(discount)
		p.DiscountPrice = &d
	}
	e.store.PutProduct(p)
	return p
}

// signIn attaches a principal the way a provider sign-in would.
func (e *testEnv) signIn(t *testing.T, uid, email string) *UserSession {
	t.Helper()
	us := e.registry.Attach(context.Background(), authdom.EventSignedIn, &authdom.Session{
		AccessToken: "token-" + uid,
		Principal:   authdom.Principal{UID: uid, Email: email},
	})
	require.NotNil(t, us)
	require.Equal(t, StateIdentityPresent, us.Store.State())
	return us
}

func (e *testEnv) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := e.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQuantity
}

func validAddress() shipdom.Address {
	return shipdom.Address{
		Name:         "Alice Doe",
		Phone:        "555-0100",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
	}
}
