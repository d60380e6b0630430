package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// Wishlist mirrors Cart without quantities.
type Wishlist struct {
	repo     wishlistdom.Repository
	products productdom.Repository
	cart     *Cart
	clock    Clock
	newID    func() string
	timeout  time.Duration

	mu      sync.RWMutex
	userID  string
	entries []wishlistdom.Entry
}

func NewWishlist(repo wishlistdom.Repository, products productdom.Repository, cart *Cart, timeout time.Duration) *Wishlist {
	return &Wishlist{
		repo:     repo,
		products: products,
		cart:     cart,
		clock:    systemClock{},
		newID:    newUUID,
		timeout:  timeout,
	}
}

func (w *Wishlist) OnIdentityChange(ctx context.Context, u *userdom.User) {
	uid := ""
	if u != nil {
		uid = u.ID
	}
	w.mu.Lock()
	if w.userID != uid {
		w.entries = nil
	}
	w.userID = uid
	w.mu.Unlock()

	if uid == "" {
		return
	}
	if err := w.Refresh(ctx); err != nil {
		log.Printf("[wishlist] refresh on identity change failed uid=%s err=%v", uid, err)
	}
}

// Refresh refetches the entries, newest first, each with its product.
func (w *Wishlist) Refresh(ctx context.Context) error {
	uid := w.owner()
	if uid == "" {
		w.mu.Lock()
		w.entries = nil
		w.mu.Unlock()
		return nil
	}

	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()

	rows, err := w.repo.ListByUser(cctx, uid)
	if err != nil {
		return common.Remote("wishlist.refresh", err)
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	byID, err := productsByID(cctx, w.products, ids)
	if err != nil {
		return common.Remote("wishlist.refresh", err)
	}
	for i := range rows {
		if p, ok := byID[rows[i].ProductID]; ok {
			rows[i].Product = &p
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID == uid {
		w.entries = rows
	}
	return nil
}

// Add is a no-op when productID is already wishlisted.
func (w *Wishlist) Add(ctx context.Context, productID string) (wishlistdom.Entry, error) {
	uid := w.owner()
	if uid == "" {
		return wishlistdom.Entry{}, ErrSignInRequired
	}
	productID = strings.TrimSpace(productID)

	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()

	existing, err := w.repo.FindByUserAndProduct(cctx, uid, productID)
	switch {
	case err == nil:
		if _, cached := w.entryFor(productID); !cached {
			w.attachAndApply(cctx, uid, existing)
		}
		return existing, nil
	case !errors.Is(err, common.ErrNotFound):
		return wishlistdom.Entry{}, common.Remote("wishlist.add", err)
	}

	p, err := w.products.GetByID(cctx, productID)
	if err != nil {
		return wishlistdom.Entry{}, err
	}
	e, err := wishlistdom.NewEntry(w.newID(), uid, productID, w.clock.Now())
	if err != nil {
		return wishlistdom.Entry{}, err
	}
	created, err := w.repo.Create(cctx, e)
	if errors.Is(err, common.ErrConflict) {
		created, err = w.repo.FindByUserAndProduct(cctx, uid, productID)
	}
	if err != nil {
		log.Printf("[wishlist] add failed uid=%s product=%s err=%v", uid, productID, err)
		return wishlistdom.Entry{}, common.Remote("wishlist.add", err)
	}
	created.Product = &p
	w.apply(uid, created)
	return created, nil
}

// Remove deletes entryID. A missing row is not an error.
func (w *Wishlist) Remove(ctx context.Context, entryID string) error {
	uid := w.owner()
	if uid == "" {
		return ErrSignInRequired
	}
	entryID = strings.TrimSpace(entryID)

	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.repo.Delete(cctx, uid, entryID); err != nil && !errors.Is(err, common.ErrNotFound) {
		log.Printf("[wishlist] remove failed uid=%s entry=%s err=%v", uid, entryID, err)
		return common.Remote("wishlist.remove", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID == uid {
		out := w.entries[:0:0]
		for _, e := range w.entries {
			if e.ID != entryID {
				out = append(out, e)
			}
		}
		w.entries = out
	}
	return nil
}

// Toggle adds productID when absent and removes it when present.
// It reports whether the product is wishlisted afterwards.
func (w *Wishlist) Toggle(ctx context.Context, productID string) (bool, error) {
	if w.owner() == "" {
		return false, ErrSignInRequired
	}
	productID = strings.TrimSpace(productID)

	if e, ok := w.entryFor(productID); ok {
		return false, w.Remove(ctx, e.ID)
	}

	cctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()
	e, err := w.repo.FindByUserAndProduct(cctx, w.owner(), productID)
	if err == nil {
		return false, w.Remove(ctx, e.ID)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, common.Remote("wishlist.toggle", err)
	}
	if _, err := w.Add(ctx, productID); err != nil {
		return false, err
	}
	return true, nil
}

// MoveToCart adds productID to the cart, then removes entryID. The two steps are independent.
func (w *Wishlist) MoveToCart(ctx context.Context, entryID, productID string) error {
	if w.cart == nil {
		return common.Remote("wishlist.moveToCart", errors.New("cart is not attached"))
	}
	if _, err := w.cart.Add(ctx, productID, 1); err != nil {
		return err
	}
	return w.Remove(ctx, entryID)
}

func (w *Wishlist) Contains(productID string) bool {
	_, ok := w.entryFor(strings.TrimSpace(productID))
	return ok
}

func (w *Wishlist) Items() []wishlistdom.Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]wishlistdom.Entry(nil), w.entries...)
}

func (w *Wishlist) owner() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.userID
}

func (w *Wishlist) entryFor(productID string) (wishlistdom.Entry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, e := range w.entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return wishlistdom.Entry{}, false
}

func (w *Wishlist) attachAndApply(ctx context.Context, uid string, e wishlistdom.Entry) {
	if p, err := w.products.GetByID(ctx, e.ProductID); err == nil {
		e.Product = &p
	}
	w.apply(uid, e)
}

// apply inserts e at the front (newest first), replacing by id.
func (w *Wishlist) apply(uid string, e wishlistdom.Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID != uid {
		return
	}
	for i := range w.entries {
		if w.entries[i].ID == e.ID {
			w.entries[i] = e
			return
		}
	}
	w.entries = append([]wishlistdom.Entry{e}, w.entries...)
}
