// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// Cart is the Cart Aggregate of one user session.
//
// Every mutation is persisted first; the in-memory list changes only after the
// remote call succeeds, and results are applied by item id.
type Cart struct {
	repo     cartdom.Repository
	products productdom.Repository
	clock    Clock
	newID    func() string
	timeout  time.Duration

	mu     sync.RWMutex
	userID string
	items  []cartdom.CartItem
}

func NewCart(repo cartdom.Repository, products productdom.Repository, timeout time.Duration) *Cart {
	return NewCartWithClock(repo, products, timeout, systemClock{})
}

// NewCartWithClock is useful for tests.
func NewCartWithClock(repo cartdom.Repository, products productdom.Repository, timeout time.Duration, clock Clock) *Cart {
	if clock == nil {
		clock = systemClock{}
	}
	return &Cart{
		repo:     repo,
		products: products,
		clock:    clock,
		newID:    newUUID,
		timeout:  timeout,
	}
}

// OnIdentityChange rescopes the cart to u and refetches (u == nil empties it).
func (c *Cart) OnIdentityChange(ctx context.Context, u *userdom.User) {
	uid := ""
	if u != nil {
		uid = u.ID
	}
	c.mu.Lock()
	changed := c.userID != uid
	c.userID = uid
	if changed {
		c.items = nil
	}
	c.mu.Unlock()

	if uid == "" {
		return
	}
	if err := c.Refresh(ctx); err != nil {
		log.Printf("[cart] refresh on identity change failed uid=%s err=%v", uid, err)
	}
}

// Refresh replaces the in-memory list with the persisted rows, each expanded with its product.
func (c *Cart) Refresh(ctx context.Context) error {
	uid := c.owner()
	if uid == "" {
		c.mu.Lock()
		c.items = nil
		c.mu.Unlock()
		return nil
	}

	cctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.repo.ListByUser(cctx, uid)
	if err != nil {
		return common.Remote("cart.refresh", err)
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	byID, err := productsByID(cctx, c.products, ids)
	if err != nil {
		return common.Remote("cart.refresh", err)
	}
	for i := range rows {
		if p, ok := byID[rows[i].ProductID]; ok {
			rows[i].Product = &p
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID == uid {
		c.items = rows
	}
	return nil
}

// Add puts qty of productID into the cart. An existing line is incremented instead.
func (c *Cart) Add(ctx context.Context, productID string, qty int) (cartdom.CartItem, error) {
	uid := c.owner()
	if uid == "" {
		return cartdom.CartItem{}, ErrSignInRequired
	}
	productID = strings.TrimSpace(productID)
	if qty < 1 {
		return cartdom.CartItem{}, cartdom.ErrInvalidQuantity
	}

	if existing, ok := c.lineFor(productID); ok {
		return c.SetQuantity(ctx, existing.ID, existing.Quantity+qty)
	}

	cctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	p, err := c.products.GetByID(cctx, productID)
	if err != nil {
		return cartdom.CartItem{}, err
	}

	item, err := cartdom.NewCartItem(c.newID(), uid, productID, qty, c.clock.Now())
	if err != nil {
		return cartdom.CartItem{}, err
	}
	created, err := c.repo.Create(cctx, item)
	if errors.Is(err, common.ErrConflict) {
		// another session inserted the same product first
		var row cartdom.CartItem
		row, err = c.repo.FindByUserAndProduct(cctx, uid, productID)
		if err == nil {
			created, err = c.repo.UpdateQuantity(cctx, uid, row.ID, row.Quantity+qty)
		}
	}
	if err != nil {
		log.Printf("[cart] add failed uid=%s product=%s err=%v", uid, productID, err)
		return cartdom.CartItem{}, common.Remote("cart.add", err)
	}

	created.Product = &p
	c.apply(uid, created)
	return created, nil
}

// SetQuantity overwrites the quantity of itemID; qty <= 0 removes the line.
func (c *Cart) SetQuantity(ctx context.Context, itemID string, qty int) (cartdom.CartItem, error) {
	uid := c.owner()
	if uid == "" {
		return cartdom.CartItem{}, ErrSignInRequired
	}
	if qty <= 0 {
		return cartdom.CartItem{}, c.Remove(ctx, itemID)
	}
	itemID = strings.TrimSpace(itemID)

	cctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	updated, err := c.repo.UpdateQuantity(cctx, uid, itemID, qty)
	if err != nil {
		log.Printf("[cart] setQuantity failed uid=%s item=%s err=%v", uid, itemID, err)
		return cartdom.CartItem{}, common.Remote("cart.setQuantity", err)
	}

	if p, perr := c.products.GetByID(cctx, updated.ProductID); perr == nil {
		updated.Product = &p
	} else {
		// keep the previous snapshot
		log.Printf("[cart] product snapshot refresh failed product=%s err=%v", updated.ProductID, perr)
		if prev, ok := c.line(itemID); ok {
			updated.Product = prev.Product
		}
	}

	c.apply(uid, updated)
	return updated, nil
}

// Remove deletes itemID. A missing row is not an error.
func (c *Cart) Remove(ctx context.Context, itemID string) error {
	uid := c.owner()
	if uid == "" {
		return ErrSignInRequired
	}
	itemID = strings.TrimSpace(itemID)

	cctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.repo.Delete(cctx, uid, itemID); err != nil && !errors.Is(err, common.ErrNotFound) {
		log.Printf("[cart] remove failed uid=%s item=%s err=%v", uid, itemID, err)
		return common.Remote("cart.remove", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID == uid {
		c.items = dropLine(c.items, itemID)
	}
	return nil
}

// Clear deletes every line of the active Identity.
func (c *Cart) Clear(ctx context.Context) error {
	uid := c.owner()
	if uid == "" {
		return ErrSignInRequired
	}

	cctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.repo.DeleteByUser(cctx, uid); err != nil {
		log.Printf("[cart] clear failed uid=%s err=%v", uid, err)
		return common.Remote("cart.clear", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID == uid {
		c.items = nil
	}
	return nil
}

// Total is Σ (discount_price ?? price) × quantity over the cached lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cartdom.Total(c.items)
}

func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cartdom.ItemCount(c.items)
}

// Items returns a copy of the cached lines.
func (c *Cart) Items() []cartdom.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]cartdom.CartItem(nil), c.items...)
}

// UserID is the owner of the cached lines, "" without an Identity.
func (c *Cart) UserID() string { return c.owner() }

func (c *Cart) owner() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Cart) lineFor(productID string) (cartdom.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return cartdom.CartItem{}, false
}

func (c *Cart) line(itemID string) (cartdom.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return cartdom.CartItem{}, false
}

// apply upserts item by id unless the cart was rescoped meanwhile.
func (c *Cart) apply(uid string, item cartdom.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID != uid {
		return
	}
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

func dropLine(items []cartdom.CartItem, id string) []cartdom.CartItem {
	out := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
