// internal/adapters/out/firestore/wishlist_repository_fs.go
package firestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// WishlistRepositoryFS implements wishlist.Repository with the same
// guard-document scheme as CartRepositoryFS.
type WishlistRepositoryFS struct {
	Client *firestore.Client
}

func NewWishlistRepositoryFS(client *firestore.Client) *WishlistRepositoryFS {
	return &WishlistRepositoryFS{Client: client}
}

func (r *WishlistRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(colWishlists)
}

func (r *WishlistRepositoryFS) keys() *firestore.CollectionRef {
	return r.Client.Collection(colWishlistKeys)
}

type wishlistDoc struct {
	UserID    string    `firestore:"user_id"`
	ProductID string    `firestore:"product_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

func decodeWishlist(snap *firestore.DocumentSnapshot) (wishlistdom.Entry, error) {
	var d wishlistDoc
	if err := snap.DataTo(&d); err != nil {
		return wishlistdom.Entry{}, err
	}
	return wishlistdom.Entry{
		ID:        snap.Ref.ID,
		UserID:    d.UserID,
		ProductID: d.ProductID,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

func (r *WishlistRepositoryFS) ListByUser(ctx context.Context, userID string) ([]wishlistdom.Entry, error) {
	q := r.col().Where("user_id", "==", strings.TrimSpace(userID))
	es, err := decodeAll(q.Documents(ctx), decodeWishlist)
	if err != nil {
		return nil, classify("wishlists.list", err, nil, nil)
	}
	// newest first
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].CreatedAt.Equal(es[j].CreatedAt) {
			return es[i].ID < es[j].ID
		}
		return es[i].CreatedAt.After(es[j].CreatedAt)
	})
	return es, nil
}

func (r *WishlistRepositoryFS) FindByUserAndProduct(ctx context.Context, userID, productID string) (wishlistdom.Entry, error) {
	key, err := r.keys().Doc(uniqueKey(userID, productID)).Get(ctx)
	if err != nil {
		return wishlistdom.Entry{}, classify("wishlists.find", err, wishlistdom.ErrNotFound, nil)
	}
	var k keyDoc
	if err := key.DataTo(&k); err != nil {
		return wishlistdom.Entry{}, err
	}
	snap, err := r.col().Doc(k.ItemID).Get(ctx)
	if err != nil {
		return wishlistdom.Entry{}, classify("wishlists.find", err, wishlistdom.ErrNotFound, nil)
	}
	return decodeWishlist(snap)
}

func (r *WishlistRepositoryFS) Create(ctx context.Context, e wishlistdom.Entry) (wishlistdom.Entry, error) {
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.keys().Doc(uniqueKey(e.UserID, e.ProductID)), keyDoc{ItemID: e.ID}); err != nil {
			return err
		}
		return tx.Create(r.col().Doc(e.ID), wishlistDoc{
			UserID:    e.UserID,
			ProductID: e.ProductID,
			CreatedAt: e.CreatedAt.UTC(),
		})
	})
	if err != nil {
		return wishlistdom.Entry{}, classify("wishlists.create", err, nil, wishlistdom.ErrConflict)
	}
	return e, nil
}

func (r *WishlistRepositoryFS) Delete(ctx context.Context, userID, id string) error {
	ref := r.col().Doc(strings.TrimSpace(id))
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		e, err := decodeWishlist(snap)
		if err != nil {
			return err
		}
		if e.UserID != strings.TrimSpace(userID) {
			return wishlistdom.ErrNotFound
		}
		if err := tx.Delete(r.keys().Doc(uniqueKey(e.UserID, e.ProductID))); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	return classify("wishlists.delete", err, wishlistdom.ErrNotFound, nil)
}
