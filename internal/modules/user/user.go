package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/modules/auth"
)

// User is a store or platform-admin account. Store accounts (role magazin)
// own products and see only their slice of the order stream; the super-admin
// sees everything.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	StoreName    string    `json:"store_name,omitempty"`

	// Subscription bookkeeping. Informational only: a negative balance
	// never blocks store operation.
	SubscriptionPrice     *decimal.Decimal `json:"subscription_price,omitempty"`
	SubscriptionBalance   decimal.Decimal  `json:"subscription_balance"`
	SubscriptionStartedAt *time.Time       `json:"subscription_started_at,omitempty"`

	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStore reports whether the account is a store (magazin) tenant.
func (u *User) IsStore() bool { return u.Role == auth.RoleStore }

// HasSubscription reports whether a monthly price is set for the account.
func (u *User) HasSubscription() bool { return u.SubscriptionPrice != nil }

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRequest is the payload for creating a store/admin account.
type CreateRequest struct {
	Username          string           `json:"username"`
	Password          string           `json:"password"`
	Role              string           `json:"role"`
	StoreName         string           `json:"store_name,omitempty"`
	SubscriptionPrice *decimal.Decimal `json:"subscription_price,omitempty"`
	TelegramChatID    *int64           `json:"telegram_chat_id,omitempty"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Password              *string          `json:"password,omitempty"`
	StoreName             *string          `json:"store_name,omitempty"`
	SubscriptionPrice     *decimal.Decimal `json:"subscription_price,omitempty"`
	SubscriptionBalance   *decimal.Decimal `json:"subscription_balance,omitempty"`
	SubscriptionStartedAt *time.Time       `json:"subscription_started_at,omitempty"`
	TelegramChatID        *int64           `json:"telegram_chat_id,omitempty"`
}
