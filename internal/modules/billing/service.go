// Package billing keeps the informational subscription ledger for store
// accounts. It is independent of the order and product aggregation: a
// negative balance never blocks store operation.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/modules/user"
)

// Balance is one store's ledger line.
type Balance struct {
	StoreID           uuid.UUID        `json:"store_id"`
	StoreName         string           `json:"store_name"`
	SubscriptionPrice *decimal.Decimal `json:"subscription_price,omitempty"`
	Balance           decimal.Decimal  `json:"balance"`
	StartedAt         *time.Time       `json:"started_at,omitempty"`
}

// RunResult reports what a monthly update did.
type RunResult struct {
	Charged int `json:"charged"`
	Skipped int `json:"skipped"`
}

// Service defines the subscription ledger operations.
type Service interface {
	// RunMonthlyUpdate decrements every subscribed store's balance by its
	// monthly price. Stores without a price are skipped. The run is an
	// explicit admin action, not a scheduled job.
	RunMonthlyUpdate(ctx context.Context) (*RunResult, error)

	// Balances lists the ledger for every store account.
	Balances(ctx context.Context) ([]*Balance, error)
}

type service struct {
	users user.Repository
}

// NewService creates a billing service over the account store.
func NewService(users user.Repository) Service {
	return &service{users: users}
}

func (s *service) RunMonthlyUpdate(ctx context.Context) (*RunResult, error) {
	accounts, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	res := &RunResult{}
	for _, u := range accounts {
		if !u.IsStore() {
			continue
		}
		if !u.HasSubscription() {
			res.Skipped++
			continue
		}
		u.SubscriptionBalance = u.SubscriptionBalance.Sub(*u.SubscriptionPrice)
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
		res.Charged++
	}
	return res, nil
}

func (s *service) Balances(ctx context.Context) ([]*Balance, error) {
	accounts, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	balances := make([]*Balance, 0, len(accounts))
	for _, u := range accounts {
		if !u.IsStore() {
			continue
		}
		balances = append(balances, &Balance{
			StoreID:           u.ID,
			StoreName:         u.StoreName,
			SubscriptionPrice: u.SubscriptionPrice,
			Balance:           u.SubscriptionBalance,
			StartedAt:         u.SubscriptionStartedAt,
		})
	}
	return balances, nil
}
