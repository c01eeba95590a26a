package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for products. Products are the only
// collection with a delete path.
type Repository interface {
	// List returns every product, newest first.
	List(ctx context.Context) ([]*Product, error)

	// ListByStore returns products owned by one store, newest first.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Product, error)

	// GetByID retrieves a product by id.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Create persists a new product, assigning timestamps.
	Create(ctx context.Context, p *Product) error

	// Update rewrites an existing product and refreshes updated_at.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product. Historical orders keep their snapshots.
	Delete(ctx context.Context, id uuid.UUID) error
}
