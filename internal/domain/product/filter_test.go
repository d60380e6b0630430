package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFilter_Matches(t *testing.T) {
	discount := decimal.RequireFromString("5")
	p := Product{
		ID:            "p1",
		Name:          "Wireless Earbuds",
		Brand:         "Acme",
		Price:         decimal.RequireFromString("20"),
		DiscountPrice: &discount,
		CategoryID:    "cat-1",
		IsActive:      true,
	}

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty", Filter{}, true},
		{"category", Filter{CategoryID: "cat-2"}, false},
		{"min price uses list price", Filter{MinPrice: dec("10")}, true},
		{"max price uses list price", Filter{MaxPrice: dec("10")}, false},
		{"brand is case-insensitive", Filter{Brand: "acm"}, true},
		{"query on name", Filter{Query: "EARBUDS"}, true},
		{"query miss", Filter{Query: "kettle"}, false},
		{"ids", Filter{IDs: []string{"p2"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.Matches(p))
		})
	}

	p.IsActive = false
	assert.False(t, Filter{}.Matches(p))
	assert.True(t, Filter{IncludeInactive: true}.Matches(p))
}

func TestSortProducts(t *testing.T) {
	now := time.Now()
	ps := []Product{
		{ID: "b", Name: "banana", Price: decimal.RequireFromString("3"), CreatedAt: now.Add(-time.Hour)},
		{ID: "a", Name: "Apple", Price: decimal.RequireFromString("3"), CreatedAt: now},
		{ID: "c", Name: "cherry", Price: decimal.RequireFromString("1"), CreatedAt: now.Add(-2 * time.Hour)},
	}

	SortProducts(ps, Sort{Field: SortByPrice, Direction: common.SortAsc})
	assert.Equal(t, []string{"c", "a", "b"}, ids(ps))

	SortProducts(ps, Sort{})
	assert.Equal(t, []string{"a", "b", "c"}, ids(ps))

	SortProducts(ps, Sort{Field: SortByName, Direction: common.SortDesc})
	assert.Equal(t, []string{"c", "b", "a"}, ids(ps))
}

func TestParseSortField(t *testing.T) {
	f, ok := ParseSortField(" Price ")
	assert.True(t, ok)
	assert.Equal(t, SortByPrice, f)

	_, ok = ParseSortField("popularity")
	assert.False(t, ok)
}

func ids(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
