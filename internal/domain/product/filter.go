package product

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// SortField is a whitelisted ordering column.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByPrice     SortField = "price"
	SortByRating    SortField = "rating"
	SortByName      SortField = "name"
)

func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByCreatedAt, true
	case SortByCreatedAt, SortByPrice, SortByRating, SortByName:
		return f, true
	default:
		return SortByCreatedAt, false
	}
}

// Sort is the product ordering.
type Sort struct {
	Field     SortField
	Direction common.SortOrder
}

// DefaultSort lists newest first.
var DefaultSort = Sort{Field: SortByCreatedAt, Direction: common.SortDesc}

// ByRating is used by search and category pages.
var ByRating = Sort{Field: SortByRating, Direction: common.SortDesc}

// Filter narrows a product listing. Zero values mean "no condition".
type Filter struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal

	// Brand is a case-insensitive substring of brand.
	Brand string

	// Query is a case-insensitive substring of name, description or brand.
	Query string

	RetailerID string
	IDs        []string

	// IncludeInactive lifts the is_active = true restriction (seller views, cart expansion).
	IncludeInactive bool
}

// Matches evaluates the filter in memory. Stores without pattern predicates use it.
func (f Filter) Matches(p Product) bool {
	if !f.IncludeInactive && !p.IsActive {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.RetailerID != "" && p.RetailerID != f.RetailerID {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if b := strings.TrimSpace(f.Brand); b != "" && !containsFold(p.Brand, b) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		if !containsFold(p.Name, q) && !containsFold(p.Description, q) && !containsFold(p.Brand, q) {
			return false
		}
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == p.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// SortProducts orders ps in place. Ties break on id so results are stable across stores.
func SortProducts(ps []Product, s Sort) {
	if s.Field == "" {
		s = DefaultSort
	}
	asc := s.Direction == common.SortAsc
	sort.SliceStable(ps, func(i, j int) bool {
		c := compare(ps[i], ps[j], s.Field)
		if c == 0 {
			return ps[i].ID < ps[j].ID
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
}

func compare(a, b Product, f SortField) int {
	switch f {
	case SortByPrice:
		return a.Price.Cmp(b.Price)
	case SortByRating:
		switch {
		case a.Rating < b.Rating:
			return -1
		case a.Rating > b.Rating:
			return 1
		}
		return 0
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
