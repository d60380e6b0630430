// internal/application/query/mall/cart_query.go
package mall

import (
	dto "github.com/UDAY2232/LackLink/internal/application/query/mall/dto"
	"github.com/UDAY2232/LackLink/internal/application/usecase"
	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// CartView reads the cached aggregate; it never forces a refresh.
func CartView(c *usecase.Cart) dto.CartDTO {
	items := c.Items()
	if items == nil {
		items = []cartdom.CartItem{}
	}
	return dto.CartDTO{
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func WishlistView(w *usecase.Wishlist) dto.WishlistDTO {
	items := w.Items()
	if items == nil {
		items = []wishlistdom.Entry{}
	}
	return dto.WishlistDTO{Items: items}
}
