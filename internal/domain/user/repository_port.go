package user

import "context"

// Repository is the persistence port for users.
type Repository interface {
	// GetByID returns ErrNotFound when the row does not exist.
	GetByID(ctx context.Context, id string) (User, error)

	// Create returns ErrConflict when a row with the same id exists.
	Create(ctx context.Context, u User) (User, error)

	Update(ctx context.Context, id string, patch Patch) (User, error)

	// ListByIDs returns the rows that exist; missing ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
}
