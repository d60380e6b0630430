package cart

import "context"

// Repository is the persistence port for cart_items.
// Rows come back without the Product snapshot; expansion is the caller's concern.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]CartItem, error)

	// FindByUserAndProduct returns ErrNotFound when the user has no line for productID.
	FindByUserAndProduct(ctx context.Context, userID, productID string) (CartItem, error)

	// Create returns ErrConflict when (user_id, product_id) already exists.
	Create(ctx context.Context, item CartItem) (CartItem, error)

	// UpdateQuantity and Delete are scoped to the owner; foreign or missing ids are ErrNotFound.
	UpdateQuantity(ctx context.Context, userID, id string, qty int) (CartItem, error)
	Delete(ctx context.Context, userID, id string) error

	DeleteByUser(ctx context.Context, userID string) error
}
