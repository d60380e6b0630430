package memory

import (
	"context"
	"sort"

	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

type wishlistRepo struct{ s *Store }

func (r *wishlistRepo) ListByUser(_ context.Context, userID string) ([]wishlistdom.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]wishlistdom.Entry, 0)
	for _, e := range r.s.wishlists {
		if e.UserID == userID {
			e.Product = nil
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *wishlistRepo) FindByUserAndProduct(_ context.Context, userID, productID string) (wishlistdom.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.wishlists {
		if e.UserID == userID && e.ProductID == productID {
			e.Product = nil
			return e, nil
		}
	}
	return wishlistdom.Entry{}, wishlistdom.ErrNotFound
}

func (r *wishlistRepo) Create(_ context.Context, e wishlistdom.Entry) (wishlistdom.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.wishlists {
		if cur.ID == e.ID || (cur.UserID == e.UserID && cur.ProductID == e.ProductID) {
			return wishlistdom.Entry{}, wishlistdom.ErrConflict
		}
	}
	e.Product = nil
	r.s.wishlists[e.ID] = e
	return e, nil
}

func (r *wishlistRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.wishlists[id]
	if !ok || e.UserID != userID {
		return wishlistdom.ErrNotFound
	}
	delete(r.s.wishlists, id)
	return nil
}
