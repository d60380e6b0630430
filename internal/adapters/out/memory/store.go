// internal/adapters/out/memory/store.go
package memory

import (
	"sync"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// Mode is reported on /healthz when this store backs the service.
const Mode = "memory"

// Store holds every collection in process memory.
// It backs offline mode and is the test double for use cases.
type Store struct {
	mu sync.RWMutex

	users      map[string]userdom.User
	categories map[string]productdom.Category
	products   map[string]productdom.Product
	cartItems  map[string]cartdom.CartItem
	orders     map[string]orderdom.Order
	orderItems map[string]orderitemdom.OrderItem
	reviews    map[string]reviewdom.Review
	wishlists  map[string]wishlistdom.Entry
}

// NewStore initializes an empty Store.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]userdom.User),
		categories: make(map[string]productdom.Category),
		products:   make(map[string]productdom.Product),
		cartItems:  make(map[string]cartdom.CartItem),
		orders:     make(map[string]orderdom.Order),
		orderItems: make(map[string]orderitemdom.OrderItem),
		reviews:    make(map[string]reviewdom.Review),
		wishlists:  make(map[string]wishlistdom.Entry),
	}
}

func (s *Store) Users() userdom.Repository                 { return &userRepo{s} }
func (s *Store) Products() productdom.Repository           { return &productRepo{s} }
func (s *Store) Categories() productdom.CategoryRepository { return &categoryRepo{s} }
func (s *Store) CartItems() cartdom.Repository             { return &cartRepo{s} }
func (s *Store) Orders() orderdom.Repository               { return &orderRepo{s} }
func (s *Store) OrderItems() orderitemdom.Repository       { return &orderItemRepo{s} }
func (s *Store) Reviews() reviewdom.Repository             { return &reviewRepo{s} }
func (s *Store) Wishlists() wishlistdom.Repository         { return &wishlistRepo{s} }

func (s *Store) Mode() string { return Mode }
func (s *Store) Close() error { return nil }

// PutCategory and PutProduct insert fixtures directly (seed and tests).
func (s *Store) PutCategory(c productdom.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *Store) PutProduct(p productdom.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p.Clone()
}

func (s *Store) PutUser(u userdom.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}
