// internal/adapters/out/db/store.go
package db

import (
	"database/sql"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// Mode is reported on /healthz when PostgreSQL backs the service.
const Mode = "postgres"

// Store is the PostgreSQL DataStore. It owns the *sql.DB.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Users() userdom.Repository                 { return NewUserRepositoryPG(s.DB) }
func (s *Store) Products() productdom.Repository           { return NewProductRepositoryPG(s.DB) }
func (s *Store) Categories() productdom.CategoryRepository { return NewCategoryRepositoryPG(s.DB) }
func (s *Store) CartItems() cartdom.Repository             { return NewCartRepositoryPG(s.DB) }
func (s *Store) Orders() orderdom.Repository               { return NewOrderRepositoryPG(s.DB) }
func (s *Store) OrderItems() orderitemdom.Repository       { return NewOrderItemRepositoryPG(s.DB) }
func (s *Store) Reviews() reviewdom.Repository             { return NewReviewRepositoryPG(s.DB) }
func (s *Store) Wishlists() wishlistdom.Repository         { return NewWishlistRepositoryPG(s.DB) }

func (s *Store) Mode() string { return Mode }

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
