// internal/domain/product/entity.go
package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// Product is a retailer-owned catalog entry.
//
// discount_price is expected to be <= price for the "X% off" label,
// but it is not validated here.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	DiscountPrice  *decimal.Decimal  `json:"discount_price,omitempty"`
	CategoryID     string            `json:"category_id"`
	Brand          string            `json:"brand"`
	Images         []string          `json:"images"`
	StockQuantity  int               `json:"stock_quantity"`
	Specifications map[string]string `json:"specifications"`
	RetailerID     string            `json:"retailer_id"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"review_count"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Errors
var (
	ErrNotFound          = fmt.Errorf("product: %w", common.ErrNotFound)
	ErrConflict          = fmt.Errorf("product: %w", common.ErrConflict)
	ErrInsufficientStock = fmt.Errorf("product: insufficient stock: %w", common.ErrConflict)

	ErrInvalidName     = common.NewValidationError("name", "product name is required")
	ErrInvalidPrice    = common.NewValidationError("price", "price must be greater than 0")
	ErrInvalidStock    = common.NewValidationError("stock_quantity", "stock quantity must be >= 0")
	ErrInvalidRating   = common.NewValidationError("rating", "rating must be between 0 and 5")
	ErrInvalidRetailer = common.NewValidationError("retailer_id", "retailer is required")
	ErrInvalidQuantity = common.NewValidationError("quantity", "quantity must be >= 1")
)

// EffectivePrice is discount_price when present, otherwise price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercent returns the rounded "X% off" value, 0 when there is no usable discount.
func (p Product) DiscountPercent() int {
	if p.DiscountPrice == nil || !p.Price.IsPositive() || p.DiscountPrice.GreaterThanOrEqual(p.Price) {
		return 0
	}
	off := p.Price.Sub(*p.DiscountPrice).Div(p.Price).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

func (p Product) InStock() bool { return p.StockQuantity > 0 }

// Validate checks the invariants enforced on write.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.StockQuantity < 0 {
		return ErrInvalidStock
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(p.RetailerID) == "" {
		return ErrInvalidRetailer
	}
	return nil
}

// Clone returns a deep copy (slices and maps are not shared).
func (p Product) Clone() Product {
	out := p
	if p.DiscountPrice != nil {
		d := *p.DiscountPrice
		out.DiscountPrice = &d
	}
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Specifications != nil {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	return out
}

// Patch is a partial update by the owning retailer (or by review aggregation).
type Patch struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	DiscountPrice  *decimal.Decimal
	ClearDiscount  bool
	CategoryID     *string
	Brand          *string
	Images         *[]string
	StockQuantity  *int
	Specifications *map[string]string
	Rating         *float64
	ReviewCount    *int
	IsActive       *bool
	UpdatedAt      time.Time
}

// ApplyTo mutates p in place and re-validates.
func (pt Patch) ApplyTo(p *Product) error {
	if pt.Name != nil {
		p.Name = strings.TrimSpace(*pt.Name)
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.ClearDiscount {
		p.DiscountPrice = nil
	} else if pt.DiscountPrice != nil {
		d := *pt.DiscountPrice
		p.DiscountPrice = &d
	}
	if pt.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*pt.CategoryID)
	}
	if pt.Brand != nil {
		p.Brand = strings.TrimSpace(*pt.Brand)
	}
	if pt.Images != nil {
		p.Images = append([]string(nil), (*pt.Images)...)
	}
	if pt.StockQuantity != nil {
		p.StockQuantity = *pt.StockQuantity
	}
	if pt.Specifications != nil {
		p.Specifications = map[string]string{}
		for k, v := range *pt.Specifications {
			p.Specifications[k] = v
		}
	}
	if pt.Rating != nil {
		p.Rating = *pt.Rating
	}
	if pt.ReviewCount != nil {
		p.ReviewCount = *pt.ReviewCount
	}
	if pt.IsActive != nil {
		p.IsActive = *pt.IsActive
	}
	if !pt.UpdatedAt.IsZero() {
		p.UpdatedAt = pt.UpdatedAt.UTC()
	}
	return p.Validate()
}

// ProductsTableDDL defines the PostgreSQL DDL for products.
const ProductsTableDDL = `
CREATE TABLE IF NOT EXISTS products (
  id              TEXT          PRIMARY KEY,
  name            TEXT          NOT NULL,
  description     TEXT          NOT NULL DEFAULT '',
  price           NUMERIC(12,2) NOT NULL CHECK (price > 0),
  discount_price  NUMERIC(12,2),
  category_id     TEXT          REFERENCES categories(id),
  brand           TEXT          NOT NULL DEFAULT '',
  images          TEXT[]        NOT NULL DEFAULT '{}',
  stock_quantity  INTEGER       NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  specifications  JSONB         NOT NULL DEFAULT '{}'::jsonb,
  retailer_id     TEXT          NOT NULL REFERENCES users(id),
  rating          DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  review_count    INTEGER       NOT NULL DEFAULT 0 CHECK (review_count >= 0),
  is_active       BOOLEAN       NOT NULL DEFAULT TRUE,
  created_at      TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
  updated_at      TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id) WHERE is_active;
CREATE INDEX IF NOT EXISTS idx_products_retailer ON products(retailer_id);
`
