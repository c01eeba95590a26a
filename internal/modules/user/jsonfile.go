package user

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/storage/jsonstore"
)

// userRecord is the persisted shape in users.json. It differs from User only
// in carrying the credential hash, which the API model never serialises.
type userRecord struct {
	ID                    uuid.UUID        `json:"id"`
	Username              string           `json:"username"`
	PasswordHash          string           `json:"password_hash"`
	Role                  string           `json:"role"`
	StoreName             string           `json:"store_name,omitempty"`
	SubscriptionPrice     *decimal.Decimal `json:"subscription_price,omitempty"`
	SubscriptionBalance   decimal.Decimal  `json:"subscription_balance"`
	SubscriptionStartedAt *time.Time       `json:"subscription_started_at,omitempty"`
	TelegramChatID        *int64           `json:"telegram_chat_id,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

func (rec userRecord) toModel() *User {
	u := User(rec)
	return &u
}

func toRecord(u *User) userRecord {
	return userRecord(*u)
}

type jsonRepository struct {
	col *jsonstore.Collection[userRecord]
}

// NewJSONRepository creates a flat-file account repository at path.
func NewJSONRepository(path string) Repository {
	return &jsonRepository{col: jsonstore.New[userRecord](path)}
}

func (r *jsonRepository) List(ctx context.Context) ([]*User, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read users", err)
	}
	users := make([]*User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toModel())
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *jsonRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.find(func(rec userRecord) bool { return rec.ID == id })
}

func (r *jsonRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.find(func(rec userRecord) bool { return rec.Username == username })
}

func (r *jsonRepository) find(match func(userRecord) bool) (*User, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read users", err)
	}
	for _, rec := range recs {
		if match(rec) {
			return rec.toModel(), nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (r *jsonRepository) Create(ctx context.Context, u *User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	err := r.col.Mutate(func(recs []userRecord) ([]userRecord, error) {
		return append(recs, toRecord(u)), nil
	})
	if err != nil {
		return apperr.Wrap(apperr.Storage, "write users", err)
	}
	return nil
}

func (r *jsonRepository) Update(ctx context.Context, u *User) error {
	u.UpdatedAt = time.Now()
	return r.col.Mutate(func(recs []userRecord) ([]userRecord, error) {
		for i, rec := range recs {
			if rec.ID == u.ID {
				recs[i] = toRecord(u)
				return recs, nil
			}
		}
		return nil, apperr.New(apperr.NotFound, "user not found")
	})
}
