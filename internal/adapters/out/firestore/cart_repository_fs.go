// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository.
//
// The (user_id, product_id) uniqueness is held by a guard document in
// cart_item_keys that is created and deleted in the same transaction as the line.
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(colCartItems)
}

func (r *CartRepositoryFS) keys() *firestore.CollectionRef {
	return r.Client.Collection(colCartItemKeys)
}

type cartItemDoc struct {
	UserID    string    `firestore:"user_id"`
	ProductID string    `firestore:"product_id"`
	Quantity  int       `firestore:"quantity"`
	CreatedAt time.Time `firestore:"created_at"`
}

type keyDoc struct {
	ItemID string `firestore:"item_id"`
}

func decodeCartItem(snap *firestore.DocumentSnapshot) (cartdom.CartItem, error) {
	var d cartItemDoc
	if err := snap.DataTo(&d); err != nil {
		return cartdom.CartItem{}, err
	}
	return cartdom.CartItem{
		ID:        snap.Ref.ID,
		UserID:    d.UserID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

func (r *CartRepositoryFS) ListByUser(ctx context.Context, userID string) ([]cartdom.CartItem, error) {
	q := r.col().Where("user_id", "==", strings.TrimSpace(userID))
	items, err := decodeAll(q.Documents(ctx), decodeCartItem)
	if err != nil {
		return nil, classify("cart_items.list", err, nil, nil)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *CartRepositoryFS) FindByUserAndProduct(ctx context.Context, userID, productID string) (cartdom.CartItem, error) {
	key, err := r.keys().Doc(uniqueKey(userID, productID)).Get(ctx)
	if err != nil {
		return cartdom.CartItem{}, classify("cart_items.find", err, cartdom.ErrNotFound, nil)
	}
	var k keyDoc
	if err := key.DataTo(&k); err != nil {
		return cartdom.CartItem{}, err
	}
	snap, err := r.col().Doc(k.ItemID).Get(ctx)
	if err != nil {
		return cartdom.CartItem{}, classify("cart_items.find", err, cartdom.ErrNotFound, nil)
	}
	return decodeCartItem(snap)
}

func (r *CartRepositoryFS) Create(ctx context.Context, item cartdom.CartItem) (cartdom.CartItem, error) {
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.keys().Doc(uniqueKey(item.UserID, item.ProductID)), keyDoc{ItemID: item.ID}); err != nil {
			return err
		}
		return tx.Create(r.col().Doc(item.ID), cartItemDoc{
			UserID:    item.UserID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt.UTC(),
		})
	})
	if err != nil {
		return cartdom.CartItem{}, classify("cart_items.create", err, nil, cartdom.ErrConflict)
	}
	return item, nil
}

func (r *CartRepositoryFS) UpdateQuantity(ctx context.Context, userID, id string, qty int) (cartdom.CartItem, error) {
	if qty < 1 {
		return cartdom.CartItem{}, cartdom.ErrInvalidQuantity
	}
	ref := r.col().Doc(strings.TrimSpace(id))
	var out cartdom.CartItem
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		it, err := r.getOwned(tx, ref, userID)
		if err != nil {
			return err
		}
		it.Quantity = qty
		out = it
		return tx.Update(ref, []firestore.Update{{Path: "quantity", Value: qty}})
	})
	if err != nil {
		return cartdom.CartItem{}, classify("cart_items.update", err, cartdom.ErrNotFound, nil)
	}
	return out, nil
}

func (r *CartRepositoryFS) Delete(ctx context.Context, userID, id string) error {
	ref := r.col().Doc(strings.TrimSpace(id))
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		it, err := r.getOwned(tx, ref, userID)
		if err != nil {
			return err
		}
		if err := tx.Delete(r.keys().Doc(uniqueKey(it.UserID, it.ProductID))); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	return classify("cart_items.delete", err, cartdom.ErrNotFound, nil)
}

func (r *CartRepositoryFS) DeleteByUser(ctx context.Context, userID string) error {
	items, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	batch := r.Client.Batch()
	for _, it := range items {
		batch.Delete(r.keys().Doc(uniqueKey(it.UserID, it.ProductID)))
		batch.Delete(r.col().Doc(it.ID))
	}
	_, err = batch.Commit(ctx)
	return classify("cart_items.delete_by_user", err, nil, nil)
}

func (r *CartRepositoryFS) getOwned(tx *firestore.Transaction, ref *firestore.DocumentRef, userID string) (cartdom.CartItem, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		return cartdom.CartItem{}, err
	}
	it, err := decodeCartItem(snap)
	if err != nil {
		return cartdom.CartItem{}, err
	}
	if it.UserID != strings.TrimSpace(userID) {
		return cartdom.CartItem{}, cartdom.ErrNotFound
	}
	return it, nil
}
