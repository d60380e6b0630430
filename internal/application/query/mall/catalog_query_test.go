package mall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/adapters/out/memory"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

func newCatalogStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	s.PutUser(userdom.User{ID: "shop-1", Name: "Shop One", Role: userdom.RoleRetailer})
	s.PutCategory(productdom.Category{ID: "cat-audio", Name: "Audio", Slug: "audio", IsActive: true})
	return s
}

func putCatalogProduct(s *memory.Store, id, price string, rating float64, active bool) {
	s.PutProduct(productdom.Product{
		ID:            id,
		Name:          "Product " + id,
		Brand:         "Acme",
		Price:         decimal.RequireFromString(price),
		StockQuantity: 3,
		CategoryID:    "cat-audio",
		RetailerID:    "shop-1",
		Rating:        rating,
		IsActive:      active,
		CreatedAt:     time.Now().UTC(),
	})
}

func newCatalog(s *memory.Store) *CatalogQuery {
	return NewCatalogQuery(s.Products(), s.Categories(), s.Users(), s.Reviews(), time.Second)
}

func TestCatalogList_PriceRangeAscending(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "p5", "5", 0, true)
	putCatalogProduct(s, "p10", "10", 0, true)
	putCatalogProduct(s, "p30", "30", 0, true)
	putCatalogProduct(s, "p60", "60", 0, true)

	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(50)
	got, err := newCatalog(s).List(context.Background(),
		productdom.Filter{MinPrice: &lo, MaxPrice: &hi},
		productdom.Sort{Field: productdom.SortByPrice, Direction: common.SortAsc},
	)
	require.NoError(t, err)

	var prices []string
	for _, p := range got {
		prices = append(prices, p.Price.String())
	}
	assert.Equal(t, []string{"10", "30"}, prices)
}

func TestCatalogList_NeverReturnsInactive(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "on", "10", 0, true)
	putCatalogProduct(s, "off", "10", 0, false)

	got, err := newCatalog(s).List(context.Background(), productdom.Filter{IncludeInactive: true}, productdom.DefaultSort)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "on", got[0].ID)
}

func TestCatalogSearch_BestRatedFirst(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "low", "10", 2.5, true)
	putCatalogProduct(s, "high", "10", 4.8, true)
	s.PutProduct(productdom.Product{ID: "other", Name: "Lamp", Brand: "Lumen", Price: decimal.NewFromInt(5), RetailerID: "shop-1", IsActive: true})

	got, err := newCatalog(s).Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].ID)
	assert.Equal(t, "low", got[1].ID)
}

func TestCatalogGetByID(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "p1", "25", 0, true)
	putCatalogProduct(s, "hidden", "25", 0, false)
	q := newCatalog(s)

	d, err := q.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Shop One", d.RetailerName)
	assert.Equal(t, "Audio", d.CategoryName)
	assert.True(t, d.InStock)

	hidden, err := q.GetByID(context.Background(), "hidden")
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)
	assert.Equal(t, "Shop One", hidden.RetailerName)

	_, err = q.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCatalogHome_TopRatedWithRetailerNames(t *testing.T) {
	s := newCatalogStore(t)
	for i := 0; i < HomeFeaturedLimit+2; i++ {
		putCatalogProduct(s, "p"+string(rune('a'+i)), "10", float64(i)*0.4, true)
	}
	putCatalogProduct(s, "retired", "10", 5, false)
	for i := 0; i < HomeCategoryLimit+1; i++ {
		c := string(rune('a' + i))
		s.PutCategory(productdom.Category{ID: "cat-" + c, Name: "Cat " + c, Slug: c, IsActive: true})
	}

	got, err := newCatalog(s).Home(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got.Featured, HomeFeaturedLimit)
	assert.Equal(t, "pj", got.Featured[0].ID)
	assert.Equal(t, "pc", got.Featured[HomeFeaturedLimit-1].ID)
	for _, p := range got.Featured {
		assert.True(t, p.IsActive)
		assert.Equal(t, "Shop One", p.RetailerName)
	}
	assert.Len(t, got.Categories, HomeCategoryLimit)

	got, err = newCatalog(s).Home(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, got.Featured, 3)
}

func TestCatalogHome_FailureIsError(t *testing.T) {
	s := newCatalogStore(t)
	q := NewCatalogQuery(downProducts{s.Products()}, s.Categories(), s.Users(), s.Reviews(), time.Second)

	_, err := q.Home(context.Background(), 0)
	assert.True(t, errors.Is(err, common.ErrRemoteFailure))
}

func TestCatalogGetByCategorySlug(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "p1", "25", 1, true)
	putCatalogProduct(s, "p2", "25", 3, true)
	q := newCatalog(s)

	got, err := q.GetByCategorySlug(context.Background(), "audio")
	require.NoError(t, err)
	assert.Equal(t, "cat-audio", got.Category.ID)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "p2", got.Products[0].ID)

	_, err = q.GetByCategorySlug(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCatalogReviews_LatestWithNames(t *testing.T) {
	s := newCatalogStore(t)
	putCatalogProduct(s, "p1", "25", 0, true)
	s.PutUser(userdom.User{ID: "buyer", Name: "Bea", Role: userdom.RoleCustomer})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < reviewdom.LatestLimit+2; i++ {
		_, err := s.Reviews().Create(context.Background(), reviewdom.Review{
			ID:        "r" + string(rune('a'+i)),
			ProductID: "p1",
			UserID:    "buyer",
			Rating:    4,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	got, err := newCatalog(s).Reviews(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, reviewdom.LatestLimit)
	assert.Equal(t, "Bea", got[0].ReviewerName)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
}

type downProducts struct{ productdom.Repository }

func (downProducts) List(context.Context, productdom.Filter, productdom.Sort) ([]productdom.Product, error) {
	return nil, errors.New("connection refused")
}

func TestCatalogList_FailureIsNotEmpty(t *testing.T) {
	s := newCatalogStore(t)
	q := NewCatalogQuery(downProducts{s.Products()}, s.Categories(), s.Users(), s.Reviews(), time.Second)

	got, err := q.List(context.Background(), productdom.Filter{}, productdom.DefaultSort)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, common.ErrRemoteFailure))
}
