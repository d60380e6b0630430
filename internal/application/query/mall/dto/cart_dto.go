// internal/application/query/mall/dto/cart_dto.go
package dto

import (
	"github.com/shopspring/decimal"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// CartDTO is the cart screen: lines with their product snapshot plus derived totals.
type CartDTO struct {
	Items     []cartdom.CartItem `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
}

type WishlistDTO struct {
	Items []wishlistdom.Entry `json:"items"`
}
