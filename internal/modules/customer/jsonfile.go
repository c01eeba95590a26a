package customer

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/storage/jsonstore"
)

// customerRecord is the persisted shape in customers.json; unlike the API
// model it carries the credential hash.
type customerRecord struct {
	ID           uuid.UUID `json:"id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (rec customerRecord) toModel() *Customer {
	c := Customer(rec)
	return &c
}

type jsonRepository struct {
	col *jsonstore.Collection[customerRecord]
}

// NewJSONRepository creates a flat-file customer repository at path.
func NewJSONRepository(path string) Repository {
	return &jsonRepository{col: jsonstore.New[customerRecord](path)}
}

func (r *jsonRepository) List(ctx context.Context) ([]*Customer, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read customers", err)
	}
	customers := make([]*Customer, 0, len(recs))
	for _, rec := range recs {
		customers = append(customers, rec.toModel())
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return customers, nil
}

func (r *jsonRepository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return r.find(func(rec customerRecord) bool { return rec.ID == id })
}

func (r *jsonRepository) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	return r.find(func(rec customerRecord) bool { return rec.Phone == phone })
}

func (r *jsonRepository) find(match func(customerRecord) bool) (*Customer, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read customers", err)
	}
	for _, rec := range recs {
		if match(rec) {
			return rec.toModel(), nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "customer not found")
}

func (r *jsonRepository) Create(ctx context.Context, c *Customer) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	err := r.col.Mutate(func(recs []customerRecord) ([]customerRecord, error) {
		return append(recs, customerRecord(*c)), nil
	})
	if err != nil {
		return apperr.Wrap(apperr.Storage, "write customers", err)
	}
	return nil
}

func (r *jsonRepository) Update(ctx context.Context, c *Customer) error {
	c.UpdatedAt = time.Now()
	return r.col.Mutate(func(recs []customerRecord) ([]customerRecord, error) {
		for i, rec := range recs {
			if rec.ID == c.ID {
				recs[i] = customerRecord(*c)
				return recs, nil
			}
		}
		return nil, apperr.New(apperr.NotFound, "customer not found")
	})
}
