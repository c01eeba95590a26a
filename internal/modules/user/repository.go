package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for store/admin accounts. Two
// implementations exist, Postgres and flat-file, and behave identically.
type Repository interface {
	// List returns every account, newest first.
	List(ctx context.Context) ([]*User, error)

	// GetByID retrieves an account by id.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves an account by its unique username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new account, assigning timestamps.
	Create(ctx context.Context, u *User) error

	// Update rewrites an existing account and refreshes updated_at.
	Update(ctx context.Context, u *User) error
}
