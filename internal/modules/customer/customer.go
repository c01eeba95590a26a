package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a storefront buyer. The phone number is the natural dedup key:
// checkout creates credential-less records implicitly, and a later
// registration with the same phone claims the record by setting a password.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasCredential reports whether the customer has claimed the record with a
// password.
func (c *Customer) HasCredential() bool { return c.PasswordHash != "" }

// LoginRequest is the payload for POST /api/customers/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /api/customers/register. Empty
// fields leave existing values untouched when the phone is already known.
type RegisterRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	Password string `json:"password,omitempty"`
}
