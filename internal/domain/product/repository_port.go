package product

import "context"

// Repository is the persistence port for products.
type Repository interface {
	List(ctx context.Context, f Filter, s Sort) ([]Product, error)
	Count(ctx context.Context, f Filter) (int, error)

	// GetByID returns ErrNotFound for unknown ids (active or not).
	GetByID(ctx context.Context, id string) (Product, error)

	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, patch Patch) (Product, error)

	// DecrementStock subtracts qty only when stock_quantity >= qty, atomically.
	// Returns ErrInsufficientStock otherwise and leaves the row unchanged.
	DecrementStock(ctx context.Context, id string, qty int) (Product, error)

	// IncrementStock adds qty back (compensation).
	IncrementStock(ctx context.Context, id string, qty int) error
}

// CategoryRepository is the read port for categories.
type CategoryRepository interface {
	// List returns active categories ordered by name.
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	GetBySlug(ctx context.Context, slug string) (Category, error)
}
