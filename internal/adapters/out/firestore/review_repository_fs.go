// internal/adapters/out/firestore/review_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
)

type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

type reviewDoc struct {
	ProductID string    `firestore:"product_id"`
	UserID    string    `firestore:"user_id"`
	Rating    int       `firestore:"rating"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"created_at"`
}

func decodeReview(snap *firestore.DocumentSnapshot) (reviewdom.Review, error) {
	var d reviewDoc
	if err := snap.DataTo(&d); err != nil {
		return reviewdom.Review{}, err
	}
	return reviewdom.Review{
		ID:        snap.Ref.ID,
		ProductID: d.ProductID,
		UserID:    d.UserID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

// ListByProduct needs the (product_id, created_at desc) composite index.
func (r *ReviewRepositoryFS) ListByProduct(ctx context.Context, productID string, limit int) ([]reviewdom.Review, error) {
	q := r.Client.Collection(colReviews).
		Where("product_id", "==", strings.TrimSpace(productID)).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	out, err := decodeAll(q.Documents(ctx), decodeReview)
	if err != nil {
		return nil, classify("reviews.list", err, nil, nil)
	}
	return out, nil
}

func (r *ReviewRepositoryFS) Create(ctx context.Context, rv reviewdom.Review) (reviewdom.Review, error) {
	_, err := r.Client.Collection(colReviews).Doc(rv.ID).Create(ctx, reviewDoc{
		ProductID: rv.ProductID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.UTC(),
	})
	if err != nil {
		return reviewdom.Review{}, classify("reviews.create", err, nil, nil)
	}
	return rv, nil
}
