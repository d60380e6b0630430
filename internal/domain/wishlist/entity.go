// internal/domain/wishlist/entity.go
package wishlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// Entry is one wishlisted product. (user_id, product_id) is unique.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *productdom.Product `json:"product,omitempty"`
}

var (
	ErrNotFound     = fmt.Errorf("wishlist: entry %w", common.ErrNotFound)
	ErrConflict     = fmt.Errorf("wishlist: entry %w", common.ErrConflict)
	ErrInvalidEntry = common.NewValidationError("wishlist", "user, product and id are required")
)

func NewEntry(id, userID, productID string, now time.Time) (Entry, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if id == "" || userID == "" || productID == "" {
		return Entry{}, ErrInvalidEntry
	}
	return Entry{ID: id, UserID: userID, ProductID: productID, CreatedAt: now.UTC()}, nil
}

// WishlistsTableDDL defines the PostgreSQL DDL for wishlists.
const WishlistsTableDDL = `
CREATE TABLE IF NOT EXISTS wishlists (
  id          TEXT        PRIMARY KEY,
  user_id     TEXT        NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id  TEXT        NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CONSTRAINT uq_wishlists_user_product UNIQUE (user_id, product_id)
);
`
