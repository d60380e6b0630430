package db

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

func TestBuildProductWhere(t *testing.T) {
	minP := decimal.NewFromInt(10)
	maxP := decimal.NewFromInt(50)

	where, args := buildProductWhere(productdom.Filter{
		CategoryID: "cat-1",
		MinPrice:   &minP,
		MaxPrice:   &maxP,
		Brand:      "Acme",
	})

	assert.Equal(t, []string{
		"is_active = TRUE",
		"category_id = $1",
		"price >= $2",
		"price <= $3",
		"brand ILIKE $4",
	}, where)
	assert.Len(t, args, 4)
	assert.Equal(t, "%Acme%", args[3])
}

func TestBuildProductWhere_SearchAndInactive(t *testing.T) {
	where, args := buildProductWhere(productdom.Filter{Query: "phone", IncludeInactive: true})

	assert.Equal(t, []string{"(name ILIKE $1 OR description ILIKE $1 OR brand ILIKE $1)"}, where)
	assert.Equal(t, []any{"%phone%"}, args)
}

func TestProductOrderBy(t *testing.T) {
	assert.Equal(t, "ORDER BY rating DESC, id ASC", productOrderBy(productdom.ByRating))
	assert.Equal(t, "ORDER BY price ASC, id ASC", productOrderBy(productdom.Sort{Field: productdom.SortByPrice, Direction: common.SortAsc}))
	assert.Equal(t, "ORDER BY price DESC, id ASC", productOrderBy(productdom.Sort{Field: productdom.SortByPrice}))
	assert.Equal(t, "ORDER BY created_at DESC, id ASC", productOrderBy(productdom.Sort{}))
}
