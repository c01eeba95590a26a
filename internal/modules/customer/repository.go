package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for customers.
type Repository interface {
	// List returns every customer, newest first.
	List(ctx context.Context) ([]*Customer, error)

	// GetByID retrieves a customer by id.
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// GetByPhone retrieves a customer by the phone natural key.
	GetByPhone(ctx context.Context, phone string) (*Customer, error)

	// Create persists a new customer, assigning timestamps.
	Create(ctx context.Context, c *Customer) error

	// Update rewrites an existing customer and refreshes updated_at.
	Update(ctx context.Context, c *Customer) error
}
