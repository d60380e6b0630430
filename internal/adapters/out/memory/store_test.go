package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

func TestSeedFromFile_DefaultCatalog(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SeedFromFile(""))

	ctx := context.Background()
	cats, err := s.Categories().List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	c, err := s.Categories().GetBySlug(ctx, "Electronics")
	require.NoError(t, err)
	assert.Equal(t, "cat-electronics", c.ID)

	p, err := s.Products().GetByID(ctx, "prod-earbuds")
	require.NoError(t, err)
	require.NotNil(t, p.DiscountPrice)
	assert.Equal(t, "44.99", p.EffectivePrice().StringFixed(2))
}

func TestSeed_RejectsBadPrice(t *testing.T) {
	s := NewStore()
	err := s.Seed([]byte("products:\n  - id: x\n    name: X\n    price: abc\n    retailer_id: r\n"))
	assert.Error(t, err)
}

func TestProductRepo_DecrementStockIsConditional(t *testing.T) {
	s := NewStore()
	s.PutProduct(productdom.Product{ID: "p1", Name: "P", Price: decimal.NewFromInt(5), StockQuantity: 3, RetailerID: "r", IsActive: true})
	ctx := context.Background()

	_, err := s.Products().DecrementStock(ctx, "p1", 4)
	assert.ErrorIs(t, err, productdom.ErrInsufficientStock)

	p, err := s.Products().DecrementStock(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, p.StockQuantity)
}

func TestProductRepo_ConcurrentDecrementNeverOversells(t *testing.T) {
	s := NewStore()
	s.PutProduct(productdom.Product{ID: "p1", Name: "P", Price: decimal.NewFromInt(5), StockQuantity: 10, RetailerID: "r", IsActive: true})
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Products().DecrementStock(ctx, "p1", 1); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, ok)
	assert.Equal(t, 0, p.StockQuantity)
}

func TestCartRepo_UniquePerUserAndProduct(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	a, _ := cartdom.NewCartItem("c1", "u1", "p1", 1, now)
	b, _ := cartdom.NewCartItem("c2", "u1", "p1", 2, now)

	_, err := s.CartItems().Create(ctx, a)
	require.NoError(t, err)
	_, err = s.CartItems().Create(ctx, b)
	assert.True(t, errors.Is(err, common.ErrConflict))

	err = s.CartItems().Delete(ctx, "someone-else", "c1")
	assert.ErrorIs(t, err, cartdom.ErrNotFound)
}
