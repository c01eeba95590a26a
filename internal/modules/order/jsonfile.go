package order

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/storage/jsonstore"
)

type jsonRepository struct {
	col *jsonstore.Collection[Order]
}

// NewJSONRepository creates a flat-file order repository at path.
func NewJSONRepository(path string) Repository {
	return &jsonRepository{col: jsonstore.New[Order](path)}
}

func (r *jsonRepository) List(ctx context.Context) ([]*Order, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read orders", err)
	}
	orders := make([]*Order, 0, len(recs))
	for i := range recs {
		o := recs[i]
		orders = append(orders, &o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *jsonRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read orders", err)
	}
	for i := range recs {
		if recs[i].ID == id {
			o := recs[i]
			return &o, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (r *jsonRepository) Create(ctx context.Context, o *Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	err := r.col.Mutate(func(recs []Order) ([]Order, error) {
		return append(recs, *o), nil
	})
	if err != nil {
		return apperr.Wrap(apperr.Storage, "write orders", err)
	}
	return nil
}

func (r *jsonRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.col.Mutate(func(recs []Order) ([]Order, error) {
		for i := range recs {
			if recs[i].ID == id {
				recs[i].Status = status
				recs[i].UpdatedAt = time.Now()
				return recs, nil
			}
		}
		return nil, apperr.New(apperr.NotFound, "order not found")
	})
}
