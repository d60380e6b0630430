package mall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
)

func TestOrderQuery_ListByUser_NewestFirstWithProducts(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "p1", "10", 0, true)
	putCatalogProduct(s, "retired", "4", 0, false)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"o-old", "o-new"} {
		_, err := s.Orders().Create(ctx, orderdom.Order{
			ID:          id,
			UserID:      "buyer",
			TotalAmount: decimal.NewFromInt(14),
			Status:      orderdom.StatusPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := s.Orders().Create(ctx, orderdom.Order{ID: "o-else", UserID: "someone", CreatedAt: base})
	require.NoError(t, err)

	require.NoError(t, s.OrderItems().CreateBatch(ctx, []orderitemdom.OrderItem{
		{ID: orderitemdom.DeterministicID("o-new", 0), OrderID: "o-new", ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10), CreatedAt: base},
		{ID: orderitemdom.DeterministicID("o-new", 1), OrderID: "o-new", ProductID: "retired", Quantity: 1, Price: decimal.NewFromInt(4), CreatedAt: base},
	}))

	got, err := NewOrderQuery(s.Orders(), s.OrderItems(), s.Products(), time.Second).ListByUser(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "o-new", got[0].ID)
	assert.Equal(t, "o-old", got[1].ID)

	require.Len(t, got[0].OrderItems, 2)
	for _, it := range got[0].OrderItems {
		require.NotNil(t, it.Product, it.ProductID)
	}
	assert.Empty(t, got[1].OrderItems)
	assert.NotNil(t, got[1].OrderItems)
}

func TestOrderQuery_ListByUser_RequiresUser(t *testing.T) {
	s := newCatalogStore(t)
	_, err := NewOrderQuery(s.Orders(), s.OrderItems(), s.Products(), time.Second).ListByUser(context.Background(), " ")
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}
