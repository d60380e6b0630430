// internal/adapters/out/firestore/store.go
package firestore

import (
	"cloud.google.com/go/firestore"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// Mode is reported on /healthz when Firestore backs the service.
const Mode = "firestore"

// Collection names.
const (
	colUsers      = "users"
	colCategories = "categories"
	colProducts   = "products"
	colCartItems  = "cart_items"
	colOrders     = "orders"
	colOrderItems = "order_items"
	colReviews    = "reviews"
	colWishlists  = "wishlists"

	// (user_id, product_id) guard documents keyed by uniqueKey.
	colCartItemKeys = "cart_item_keys"
	colWishlistKeys = "wishlist_keys"
)

// Store is the Firestore DataStore. Closing it closes the client.
type Store struct {
	Client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{Client: client}
}

func (s *Store) Users() userdom.Repository                 { return NewUserRepositoryFS(s.Client) }
func (s *Store) Products() productdom.Repository           { return NewProductRepositoryFS(s.Client) }
func (s *Store) Categories() productdom.CategoryRepository { return NewCategoryRepositoryFS(s.Client) }
func (s *Store) CartItems() cartdom.Repository             { return NewCartRepositoryFS(s.Client) }
func (s *Store) Orders() orderdom.Repository               { return NewOrderRepositoryFS(s.Client) }
func (s *Store) OrderItems() orderitemdom.Repository       { return NewOrderItemRepositoryFS(s.Client) }
func (s *Store) Reviews() reviewdom.Repository             { return NewReviewRepositoryFS(s.Client) }
func (s *Store) Wishlists() wishlistdom.Repository         { return NewWishlistRepositoryFS(s.Client) }

func (s *Store) Mode() string { return Mode }

func (s *Store) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}
