package memory

import (
	"context"
	"sort"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
)

type cartRepo struct{ s *Store }

func (r *cartRepo) ListByUser(_ context.Context, userID string) ([]cartdom.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]cartdom.CartItem, 0)
	for _, it := range r.s.cartItems {
		if it.UserID == userID {
			it.Product = nil
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *cartRepo) FindByUserAndProduct(_ context.Context, userID, productID string) (cartdom.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			it.Product = nil
			return it, nil
		}
	}
	return cartdom.CartItem{}, cartdom.ErrNotFound
}

func (r *cartRepo) Create(_ context.Context, item cartdom.CartItem) (cartdom.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cartItems[item.ID]; ok {
		return cartdom.CartItem{}, cartdom.ErrConflict
	}
	for _, it := range r.s.cartItems {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			return cartdom.CartItem{}, cartdom.ErrConflict
		}
	}
	item.Product = nil
	r.s.cartItems[item.ID] = item
	return item, nil
}

func (r *cartRepo) UpdateQuantity(_ context.Context, userID, id string, qty int) (cartdom.CartItem, error) {
	if qty < 1 {
		return cartdom.CartItem{}, cartdom.ErrInvalidQuantity
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cartItems[id]
	if !ok || it.UserID != userID {
		return cartdom.CartItem{}, cartdom.ErrNotFound
	}
	it.Quantity = qty
	r.s.cartItems[id] = it
	return it, nil
}

func (r *cartRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cartItems[id]
	if !ok || it.UserID != userID {
		return cartdom.ErrNotFound
	}
	delete(r.s.cartItems, id)
	return nil
}

func (r *cartRepo) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}
