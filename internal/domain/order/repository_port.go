package order

import "context"

// Repository is the persistence port for orders.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)

	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// ListByIDs returns existing orders newest first; unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]Order, error)

	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	UpdateProgress(ctx context.Context, id string, p Progress) error

	// ListByWorkflowStates is used by reconciliation at boot.
	ListByWorkflowStates(ctx context.Context, states []WorkflowState) ([]Order, error)
}
