package review

import "context"

// Repository is the persistence port for reviews.
type Repository interface {
	// ListByProduct returns newest first; limit <= 0 means all.
	ListByProduct(ctx context.Context, productID string, limit int) ([]Review, error)
	Create(ctx context.Context, r Review) (Review, error)
}
