// internal/application/query/mall/dto/catalog_dto.go
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// ProductDTO is a storefront product card.
type ProductDTO struct {
	productdom.Product

	EffectivePrice  decimal.Decimal `json:"effective_price"`
	DiscountPercent int             `json:"discount_percent"`
	InStock         bool            `json:"in_stock"`
}

func NewProductDTO(p productdom.Product) ProductDTO {
	return ProductDTO{
		Product:         p,
		EffectivePrice:  p.EffectivePrice(),
		DiscountPercent: p.DiscountPercent(),
		InStock:         p.InStock(),
	}
}

func NewProductDTOs(ps []productdom.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductDTO(p))
	}
	return out
}

// ProductDetailDTO expands a product with its retailer's public name and its category name.
type ProductDetailDTO struct {
	ProductDTO

	RetailerName string `json:"retailer_name"`
	CategoryName string `json:"category_name"`
}

// FeaturedProductDTO is a home page card.
type FeaturedProductDTO struct {
	ProductDTO

	RetailerName string `json:"retailer_name"`
}

type HomeDTO struct {
	Featured   []FeaturedProductDTO  `json:"featured"`
	Categories []productdom.Category `json:"categories"`
}

type CategoryProductsDTO struct {
	Category productdom.Category `json:"category"`
	Products []ProductDTO        `json:"products"`
}

// ReviewDTO carries the reviewer's display name.
type ReviewDTO struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	UserID       string    `json:"user_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
