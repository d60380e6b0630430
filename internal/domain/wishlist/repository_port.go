package wishlist

import "context"

// Repository is the persistence port for wishlists.
type Repository interface {
	// ListByUser returns newest first, without product expansion.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// FindByUserAndProduct is the existence check; ErrNotFound when absent.
	FindByUserAndProduct(ctx context.Context, userID, productID string) (Entry, error)

	// Create returns ErrConflict on a duplicate (user_id, product_id).
	Create(ctx context.Context, e Entry) (Entry, error)

	// Delete is scoped to the owner; ErrNotFound when absent.
	Delete(ctx context.Context, userID, id string) error
}
