package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders. Orders are never deleted;
// after creation only the status mutates.
type Repository interface {
	// List returns every order, newest first.
	List(ctx context.Context) ([]*Order, error)

	// GetByID retrieves an order by id.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// Create persists a new order with its items, assigning timestamps.
	Create(ctx context.Context, o *Order) error

	// UpdateStatus overwrites the status and refreshes updated_at.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
